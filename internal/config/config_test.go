package config

import "testing"

func validOptions() Options {
	o := Default()
	o.RecordPath = "game.pgn"
	o.OutputPath = "game.gif"
	return o
}

func TestDefaultsAreValid(t *testing.T) {
	o := validOptions()
	if err := o.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
	}{
		{"missing record path", func(o *Options) { o.RecordPath = "" }},
		{"missing output path", func(o *Options) { o.OutputPath = "" }},
		{"unknown orientation", func(o *Options) { o.Orientation = "diagonal" }},
		{"tiny board", func(o *Options) { o.BoardSize = 4 }},
		{"negative loop", func(o *Options) { o.LoopCount = -1 }},
		{"zero duration", func(o *Options) { o.FrameDuration = 0 }},
		{"zero fps", func(o *Options) { o.FrameRate = 0 }},
		{"palette too small", func(o *Options) { o.PaletteSize = 1 }},
		{"palette too large", func(o *Options) { o.PaletteSize = 257 }},
		{"zero workers", func(o *Options) { o.Workers = 0 }},
	}
	for _, tc := range cases {
		o := validOptions()
		tc.mutate(&o)
		if err := o.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}
