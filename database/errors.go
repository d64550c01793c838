/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

type StoreError int

const (
	UnknownErr StoreError = iota
	NoDocumentsErr
	DuplicateKeyErr
	TimeoutErr
	NetworkErr
	AuthErr
	UnauthorizedErr
	NamespaceExistsErr
	NamespaceNotFoundErr
	ValidationErr
	IndexNotFoundErr
	CursorNotFoundErr
)

// Server error codes observed in practice.
const (
	codeUnauthorized         = 13
	codeAuthFailed           = 18
	codeNamespaceNotFound    = 26
	codeCursorNotFound       = 43
	codeNamespaceExists      = 48
	codeIndexNotFound        = 27
	codeDocValidationFailure = 121
	codeDuplicateKey         = 11000
)

// IsStoreError classifies an error reported by the driver or the server.
func IsStoreError(err error) (is bool, storeErr StoreError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, NoDocumentsErr
	}
	if mongo.IsDuplicateKeyError(err) {
		return true, DuplicateKeyErr
	}
	if mongo.IsTimeout(err) {
		return true, TimeoutErr
	}
	if mongo.IsNetworkError(err) {
		return true, NetworkErr
	}

	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(codeDuplicateKey):
			return true, DuplicateKeyErr
		case serverErr.HasErrorCode(codeAuthFailed):
			return true, AuthErr
		case serverErr.HasErrorCode(codeUnauthorized):
			return true, UnauthorizedErr
		case serverErr.HasErrorCode(codeNamespaceExists):
			return true, NamespaceExistsErr
		case serverErr.HasErrorCode(codeNamespaceNotFound):
			return true, NamespaceNotFoundErr
		case serverErr.HasErrorCode(codeDocValidationFailure):
			return true, ValidationErr
		case serverErr.HasErrorCode(codeIndexNotFound):
			return true, IndexNotFoundErr
		case serverErr.HasErrorCode(codeCursorNotFound):
			return true, CursorNotFoundErr
		default:
			return true, UnknownErr
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "e11000") {
		return true, DuplicateKeyErr
	}
	if strings.Contains(s, "authentication failed") {
		return true, AuthErr
	}
	if strings.Contains(s, "not authorized") {
		return true, UnauthorizedErr
	}
	if strings.Contains(s, "already exists") &&
		(strings.Contains(s, "collection") || strings.Contains(s, "namespace")) {
		return true, NamespaceExistsErr
	}
	if strings.Contains(s, "ns not found") ||
		(strings.Contains(s, "namespace") && strings.Contains(s, "not found")) {
		return true, NamespaceNotFoundErr
	}
	if strings.Contains(s, "document failed validation") {
		return true, ValidationErr
	}
	if strings.Contains(s, "index not found") {
		return true, IndexNotFoundErr
	}
	if strings.Contains(s, "cursor not found") ||
		strings.Contains(s, "cursor id") && strings.Contains(s, "not found") {
		return true, CursorNotFoundErr
	}
	return false, UnknownErr
}
