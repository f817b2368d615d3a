package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sync"

	"github.com/curtisnewbie/timeaxis/util/strutil"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var (
	// regex for arg expansion
	resolveArgRegexp = regexp.MustCompile(`\${[a-zA-Z0-9\\-\\_\.]+}`)

	setDefPropMu    sync.Mutex
	setDefPropFuncs []func() (k string, defVal any)
)

// Application configuration backed by a private viper instance.
//
// AppConfig is safe for concurrent use.
type AppConfig struct {
	vp   *viper.Viper
	rwmu *sync.RWMutex
}

// Create AppConfig with all the registered default props applied.
func NewAppConfig() *AppConfig {
	a := &AppConfig{
		vp:   viper.New(),
		rwmu: &sync.RWMutex{},
	}
	setDefPropMu.Lock()
	defer setDefPropMu.Unlock()
	for _, f := range setDefPropFuncs {
		a.SetDefProp(f())
	}
	return a
}

// Register default value for the prop, applied to every AppConfig created afterwards.
func SetDefProp(prop string, defVal any) {
	setDefPropMu.Lock()
	defer setDefPropMu.Unlock()
	setDefPropFuncs = append(setDefPropFuncs, func() (string, any) { return prop, defVal })
}

// Set value for the prop
func (a *AppConfig) SetProp(prop string, val any) {
	doWithWriteLock(a, func() {
		a.vp.Set(prop, val)
	})
}

// Set default value for the prop
func (a *AppConfig) SetDefProp(prop string, defVal any) {
	doWithWriteLock(a, func() {
		a.vp.SetDefault(prop, defVal)
	})
}

// Check whether the prop exists
func (a *AppConfig) HasProp(prop string) bool {
	return returnWithReadLock(a, func() bool { return a.vp.IsSet(prop) })
}

// Get prop as int
func (a *AppConfig) GetPropInt(prop string) int {
	return returnWithReadLock(a, func() int { return a.vp.GetInt(prop) })
}

// Get prop as string based map.
//
// Values are coerced to string, nested maps are flattened using '.' as the separator.
func (a *AppConfig) GetPropStrMap(prop string) map[string]string {
	return returnWithReadLock(a, func() map[string]string {
		m := map[string]string{}
		flattenInto(m, "", a.vp.GetStringMap(prop))
		return m
	})
}

func flattenInto(dst map[string]string, prefix string, src map[string]any) {
	for k, v := range src {
		if nested, ok := v.(map[string]any); ok {
			flattenInto(dst, prefix+k+".", nested)
			continue
		}
		dst[prefix+k] = cast.ToString(v)
	}
}

// Get prop as bool
func (a *AppConfig) GetPropBool(prop string) bool {
	return returnWithReadLock(a, func() bool { return a.vp.GetBool(prop) })
}

/*
Get prop as string

If the value is an argument that can be expanded, the actual value will be resolved if possible.

e.g, for "timezone" : "${TZ}".

This func will attempt to resolve the actual value for '${TZ}'.
*/
func (a *AppConfig) GetPropStr(prop string) string {
	return a.ResolveArg(returnWithReadLock(a, func() string { return a.vp.GetString(prop) }))
}

// Overwrite existing conf using environment and cli args.
func (a *AppConfig) OverwriteConf(args []string) {
	// overwrite the loaded configuration with cli arguments
	a.overwriteConf(ArgKeyVal(args))
}

// Load config from io Reader.
//
// It's the caller's responsibility to close the provided reader.
//
// Config loaded is merged with the previously loaded config.
func (a *AppConfig) LoadConfigFromReader(reader io.Reader) error {
	var eo error
	doWithWriteLock(a, func() {
		a.vp.SetConfigType("yml")
		if err := a.vp.MergeConfig(reader); err != nil {
			eo = fmt.Errorf("failed to load config from reader: %v", err)
		}
	})
	return eo
}

// Load config from string.
//
// Config loaded is merged with the previously loaded config.
func (a *AppConfig) LoadConfigFromStr(s string) error {
	return a.LoadConfigFromReader(bytes.NewReader(strutil.UnsafeStr2Byt(s)))
}

// Load config from file.
//
// Config loaded is merged with the previously loaded config.
func (a *AppConfig) LoadConfigFromFile(configFile string) error {
	if configFile == "" {
		return nil
	}

	f, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("unable to find config file: '%s'", configFile)
		}
		return fmt.Errorf("failed to open config file: '%s', %v", configFile, err)
	}
	defer f.Close()

	err = a.LoadConfigFromReader(f)
	if err != nil {
		return fmt.Errorf("failed to load config file: '%s', %v", configFile, err)
	}
	Debugf("Loaded config file: '%v'", configFile)
	return nil
}

func (a *AppConfig) overwriteConf(kvs map[string][]string) {
	for k, v := range kvs {
		if len(v) == 1 {
			a.SetProp(k, v[0])
		} else {
			a.SetProp(k, v)
		}
	}
}

// Resolve argument, e.g., for arg like '${someArg}', it will in fact look for 'someArg' in os.Env
func (a *AppConfig) ResolveArg(arg string) string {
	return resolveArgRegexp.ReplaceAllStringFunc(arg, func(s string) string {
		key := s[2 : len(s)-1]
		val := os.Getenv(key)

		if val == "" {
			val = returnWithReadLock(a, func() string { return a.vp.GetString(key) })
		}

		if val == "" {
			val = s
		}
		return val
	})
}

// call with viper lock
func doWithWriteLock(a *AppConfig, f func()) {
	a.rwmu.Lock()
	defer a.rwmu.Unlock()
	f()
}

func returnWithReadLock[T any](a *AppConfig, f func() T) T {
	a.rwmu.RLock()
	defer a.rwmu.RUnlock()
	return f()
}

// Parse CLI args to key-value map
func ArgKeyVal(args []string) map[string][]string {
	m := map[string][]string{}
	for _, s := range args {
		key, val, ok := strutil.SplitKV(s, "=")
		if !ok || key == "" {
			continue
		}
		if prev, ok := m[key]; ok {
			m[key] = append(prev, val)
		} else {
			m[key] = []string{val}
		}
	}
	return m
}
