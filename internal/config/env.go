package config

import (
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Env resolves environment variables with literal fallbacks.
type Env struct {
	v *viper.Viper
}

// NewEnv returns a resolver reading the process environment.
func NewEnv() *Env {
	v := viper.New()
	v.AutomaticEnv()

	return &Env{v: v}
}

// Resolve returns the value of the named environment variable, or fallback
// when it is unset or empty.
func (e *Env) Resolve(name, fallback string) string {
	if value := e.v.GetString(name); value != "" {
		return value
	}

	return fallback
}

// ResolveBool is Resolve for boolean variables. Values such as "true",
// "(false)", "1" or "0" are understood; anything else yields fallback.
func (e *Env) ResolveBool(name string, fallback bool) bool {
	raw := strings.Trim(strings.TrimSpace(e.Resolve(name, "")), "()")
	if raw == "" {
		return fallback
	}

	b, err := cast.ToBoolE(strings.ToLower(raw))
	if err != nil {
		return fallback
	}

	return b
}

// ResolveInt is Resolve for integer variables; unparsable values yield fallback.
func (e *Env) ResolveInt(name string, fallback int) int {
	raw := strings.TrimSpace(e.Resolve(name, ""))
	if raw == "" {
		return fallback
	}

	n, err := cast.ToIntE(raw)
	if err != nil {
		return fallback
	}

	return n
}
