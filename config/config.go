/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	liberr "github.com/sabouaram/dispatchcore/errors"

	"github.com/sabouaram/dispatchcore/duration"
)

// ErrConfigValidate is the code returned by Validate when a field fails its
// constraint. Deliberately outside the HTTP-status range used by the
// dispatch-taxonomy codes so it is never mistaken for a wire status.
const ErrConfigValidate liberr.CodeError = 1500

// DispatchConfig holds the per-connection knobs of the dispatch core.
//
// IdleTimeout feeds IdleTimeoutMonitor: a connection with no in-flight
// requests for longer than this is closed. DefaultRequestTimeout is the
// fallback used by a RequestTimeoutPolicy when a service does not set its
// own deadline; zero disables the timeout.
type DispatchConfig struct {
	// IdleTimeout is the duration a connection may sit with zero in-flight
	// requests before IdleTimeoutMonitor closes it. Must be positive.
	IdleTimeout duration.Duration `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout" validate:"required,gt=0"`

	// DefaultRequestTimeout bounds how long InvocationRunner waits for a
	// service handler to complete its promise before failing it with
	// RequestTimeout. Zero disables the timeout.
	DefaultRequestTimeout duration.Duration `mapstructure:"default_request_timeout" json:"default_request_timeout" yaml:"default_request_timeout"`

	// HOLBlocking is loaded and decoded with the rest of the config, but
	// nothing in this module reads it: response ordering follows only the
	// use_hol_blocking flag that RequestDispatcher derives from the session
	// protocol, so setting this field has no effect on ordering.
	HOLBlocking bool `mapstructure:"hol_blocking" json:"hol_blocking" yaml:"hol_blocking"`
}

// Default returns a DispatchConfig with a 60s idle timeout and no
// per-request deadline, matching the framing layer's own connection
// defaults.
func Default() DispatchConfig {
	return DispatchConfig{
		IdleTimeout:           duration.Seconds(60),
		DefaultRequestTimeout: 0,
	}
}

// Validate checks the struct tags declared above.
func (c DispatchConfig) Validate() liberr.Error {
	val := validator.New()
	err := val.Struct(c)

	if err == nil {
		return nil
	}

	if _, ok := err.(*validator.InvalidValidationError); ok {
		return ErrConfigValidate.Error(err)
	}

	out := ErrConfigValidate.Error(nil)

	for _, e := range err.(validator.ValidationErrors) {
		out.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.Field(), e.ActualTag()))
	}

	if !out.HasParent() {
		return nil
	}

	return out
}

// LoadFromViper unmarshals DispatchConfig from the given key of v, falling
// back to Default for any field left unset.
func LoadFromViper(v *viper.Viper, key string) (DispatchConfig, liberr.Error) {
	c := Default()

	if v == nil {
		return c, nil
	}

	opt := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))

	if err := v.UnmarshalKey(key, &c, opt); err != nil {
		return c, liberr.New(uint16(ErrConfigValidate), "cannot unmarshal dispatch config", err)
	}

	return c, nil
}
