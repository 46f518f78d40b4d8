package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer SetLogger(orig)

	var got string
	SetLogger(func(format string, v ...interface{}) { got = format })
	Logf("hello %d", 1)
	if got != "hello %d" {
		t.Errorf("expected custom logger to receive format, got %q", got)
	}

	// nil installs a no-op logger rather than panicking.
	SetLogger(nil)
	Logf("dropped")
}
