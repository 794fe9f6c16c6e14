package variant

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltinsRegistered(t *testing.T) {
	var ids []string
	for _, v := range List() {
		ids = append(ids, v.ID)
	}

	want := []string{"big", "classic", "endless", "hard", "mini"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("List() ids mismatch (-want +got):\n%s", diff)
	}
}

func TestGet(t *testing.T) {
	v, err := Get(Default)
	if err != nil {
		t.Fatalf("Get(%q) error: %v", Default, err)
	}
	if v.Size != 4 || v.Target != 2048 {
		t.Errorf("classic = %+v", v)
	}

	if _, err := Get("nope"); err == nil {
		t.Error("Get of unknown variant should fail")
	}
	if Exists("nope") {
		t.Error("Exists(nope) = true")
	}
}

func TestEndlessOptions(t *testing.T) {
	v, err := Get("endless")
	if err != nil {
		t.Fatalf("Get(endless) error: %v", err)
	}
	if !v.Endless() {
		t.Error("endless variant should report Endless")
	}
	if opts := v.Options(); opts.Target >= 0 {
		t.Errorf("endless options target = %d, want negative", opts.Target)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(Variant{ID: "classic", Size: 4})
}

func TestRegisterTooSmallPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register of a 1x1 board should panic")
		}
	}()
	Register(Variant{ID: "tiny", Size: 1})
}
