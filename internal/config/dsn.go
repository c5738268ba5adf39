package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
)

// SQLitePath returns the resolved sqlite database file.
func (c DatabaseConfig) SQLitePath() string {
	return ResolveRuntimePath(c.Path, defaultSQLitePath)
}

// DSNValue returns the connection string for the configured driver.
// For sqlite it is the resolved database file path plus pragmas.
func (c DatabaseConfig) DSNValue() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return c.SQLitePath() + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	params := neturl.Values{}
	for key, value := range c.Params {
		if key != "" && value != "" {
			params.Set(key, value)
		}
	}
	if params.Get("charset") == "" {
		params.Set("charset", c.Charset)
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	}
	if params.Get("loc") == "" {
		params.Set("loc", c.Loc)
	}

	auth := c.User
	if c.Password != "" {
		auth += ":" + c.Password
	}
	if auth != "" {
		auth += "@"
	}
	return fmt.Sprintf("%stcp(%s)/%s?%s", auth, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name, params.Encode())
}
