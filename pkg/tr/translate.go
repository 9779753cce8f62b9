// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package tr

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed languages
var langFS embed.FS

var (
	langTable = make(map[string]any)
)

var (
	// Language resolves the message table to load. zeta-am does not ship a
	// locale database of its own; it takes the hint from LC_ALL/LANG/LANGUAGE
	// the way the rest of the toolchain does and otherwise falls back to
	// en-US.
	Language = sync.OnceValue(func() string {
		for _, k := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"} {
			v := os.Getenv(k)
			if v == "" {
				continue
			}
			v = strings.SplitN(v, ".", 2)[0]
			v = strings.ReplaceAll(v, "_", "-")
			switch {
			case strings.HasPrefix(v, "zh-CN") || strings.HasPrefix(v, "zh-Hans"):
				return "zh-CN"
			}
		}
		return "en-US"
	})
)

var (
	Initialize = sync.OnceValue(func() error {
		fd, err := langFS.Open(path.Join("languages", Language()+".toml"))
		if err != nil {
			return nil // nolint: no table for this locale, fall through to keys
		}
		defer fd.Close() // nolint
		if _, err := toml.NewDecoder(fd).Decode(&langTable); err != nil {
			return err
		}
		return nil
	})
)

func translate(k string) string {
	if v, ok := langTable[k]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return k
}

// W translates a single message key, falling back to the key itself.
func W(k string) string {
	return translate(k)
}

func Fprintf(w io.Writer, format string, a ...any) (n int, err error) {
	return fmt.Fprintf(w, translate(format), a...)
}

func Sprintf(format string, a ...any) string {
	return fmt.Sprintf(translate(format), a...)
}
