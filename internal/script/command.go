// Package script translates structured operation requests into Audacity's
// scripting grammar and parses structured replies back out.
package script

import (
	"strconv"
	"strings"
)

// Command is one scripting command: a verb plus ordered key=value
// parameters. Build it fluently, then serialize with Text. Omitted optional
// parameters never appear on the wire.
type Command struct {
	verb   string
	params []param
}

type param struct {
	key   string
	value string
}

// NewCommand starts a command for the given verb.
func NewCommand(verb string) *Command {
	return &Command{verb: verb}
}

// Raw appends an unquoted token value, e.g. Mode=Set.
func (c *Command) Raw(key, value string) *Command {
	c.params = append(c.params, param{key, value})
	return c
}

// Str appends a single-quoted string value with embedded quotes escaped.
func (c *Command) Str(key, value string) *Command {
	escaped := strings.ReplaceAll(value, `'`, `\'`)
	return c.Raw(key, "'"+escaped+"'")
}

// Path appends a double-quoted filesystem path. Audacity expects forward
// slashes regardless of host OS.
func (c *Command) Path(key, value string) *Command {
	p := strings.ReplaceAll(value, `\`, "/")
	p = strings.ReplaceAll(p, `"`, `\"`)
	return c.Raw(key, `"`+p+`"`)
}

// Int appends an integer value.
func (c *Command) Int(key string, value int) *Command {
	return c.Raw(key, strconv.Itoa(value))
}

// Float appends a numeric value in minimal notation.
func (c *Command) Float(key string, value float64) *Command {
	return c.Raw(key, strconv.FormatFloat(value, 'g', -1, 64))
}

// Bool appends a boolean as 0 or 1, the grammar's boolean form.
func (c *Command) Bool(key string, value bool) *Command {
	if value {
		return c.Raw(key, "1")
	}
	return c.Raw(key, "0")
}

// OptStr appends a single-quoted string when present.
func (c *Command) OptStr(key string, value *string) *Command {
	if value != nil {
		return c.Str(key, *value)
	}
	return c
}

// OptInt appends an integer when present.
func (c *Command) OptInt(key string, value *int) *Command {
	if value != nil {
		return c.Int(key, *value)
	}
	return c
}

// OptFloat appends a numeric value when present.
func (c *Command) OptFloat(key string, value *float64) *Command {
	if value != nil {
		return c.Float(key, *value)
	}
	return c
}

// OptBool appends a 0/1 boolean when present.
func (c *Command) OptBool(key string, value *bool) *Command {
	if value != nil {
		return c.Bool(key, *value)
	}
	return c
}

// OptRaw appends an unquoted token when present.
func (c *Command) OptRaw(key string, value *string) *Command {
	if value != nil {
		return c.Raw(key, *value)
	}
	return c
}

// Text serializes the command: `Verb:` alone, or `Verb: k1=v1 k2=v2 …`.
func (c *Command) Text() string {
	if len(c.params) == 0 {
		return c.verb + ":"
	}
	var b strings.Builder
	b.WriteString(c.verb)
	b.WriteString(":")
	for _, p := range c.params {
		b.WriteString(" ")
		b.WriteString(p.key)
		b.WriteString("=")
		b.WriteString(p.value)
	}
	return b.String()
}

// Optional-parameter helpers for the Session option records.

// Bool returns a *bool for optional boolean fields.
func Bool(v bool) *bool { return &v }

// Int returns an *int for optional integer fields.
func Int(v int) *int { return &v }

// Float returns a *float64 for optional numeric fields.
func Float(v float64) *float64 { return &v }

// String returns a *string for optional string fields.
func String(v string) *string { return &v }
