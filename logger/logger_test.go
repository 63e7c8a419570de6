package logger

import "testing"

func TestPackageLevelHelpersBeforeInitialize(t *testing.T) {
	// The package must be safe to use before Initialize: the init() nop
	// logger absorbs everything.
	Info("pre-init info")
	Infof("pre-init %s", "infof")
	Infow("pre-init infow", "k", "v")
	Errorw("pre-init errorw", "k", "v")
	Warnw("pre-init warnw", "k", "v")
	Debugw("pre-init debugw", "k", "v")
}

func TestInitialize(t *testing.T) {
	for _, jsonOutput := range []bool{false, true} {
		if err := Initialize(jsonOutput); err != nil {
			t.Fatalf("Initialize(%v) error = %v", jsonOutput, err)
		}
		if Logger == nil {
			t.Fatal("Initialize left Logger nil")
		}
		if JSONOutput != jsonOutput {
			t.Errorf("JSONOutput = %v, want %v", JSONOutput, jsonOutput)
		}
	}
	Cleanup()
}
