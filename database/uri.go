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
	"fmt"
	"net/url"
	"strings"
)

// URI renders the configuration as a mongodb:// connection string:
//
//	mongodb://[user:pass@]host:port[,host2:port2...]/dbname[?options]
//
// Credentials are URL-escaped. Query options are appended only for settings
// that were actually configured, so minimal configs render minimal URIs.
func (c *ConnectionConfig) URI() string {
	var b strings.Builder
	b.WriteString("mongodb://")

	if c.Username != "" {
		b.WriteString(url.UserPassword(c.Username, c.Password).String())
		b.WriteByte('@')
	}

	b.WriteString(c.hostList())
	b.WriteByte('/')
	b.WriteString(c.DBName)

	if opts := c.uriOptions(); opts != "" {
		b.WriteByte('?')
		b.WriteString(opts)
	}
	return b.String()
}

func (c *ConnectionConfig) hostList() string {
	port := c.Port
	if port == 0 {
		port = 27017
	}
	host := c.Host
	if host == "" {
		host = "localhost"
	}

	hosts := []string{fmt.Sprintf("%s:%d", host, port)}
	for _, h := range c.Hosts {
		if h == "" {
			continue
		}
		if !strings.Contains(h, ":") {
			h = fmt.Sprintf("%s:%d", h, port)
		}
		hosts = append(hosts, h)
	}
	return strings.Join(hosts, ",")
}

func (c *ConnectionConfig) uriOptions() string {
	values := url.Values{}
	if c.ReplicaSet != "" {
		values.Set("replicaSet", c.ReplicaSet)
	}
	if c.AuthSource != "" {
		values.Set("authSource", c.AuthSource)
	}
	if c.TLS {
		values.Set("tls", "true")
	}
	if c.AppName != "" {
		values.Set("appName", c.AppName)
	}
	return values.Encode()
}
