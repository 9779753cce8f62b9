package tr

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

func TestFS(t *testing.T) {
	_ = Initialize()
	fmt.Fprintf(os.Stderr, "load ok={%v}\n", W("ok"))
	_, _ = Fprintf(os.Stderr, "current os '%s'\n", runtime.GOOS)
}

func TestLANG(t *testing.T) {
	t.Setenv("LC_ALL", "zh_CN.UTF8")
	if got := Language(); got != "en-US" && got != "zh-CN" {
		t.Fatalf("unexpected language %q", got)
	}
}
