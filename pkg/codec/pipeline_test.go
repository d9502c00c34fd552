package codec

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

func TestParseStep(t *testing.T) {
	tests := []struct {
		in      string
		want    Step
		wantErr errors.Code
	}{
		{"base64:encode", Step{NameBase64, Encode}, ""},
		{"b64:decode", Step{NameBase64, Decode}, ""},
		{"morse", Step{NameMorse, Encode}, ""},
		{" Caesar:D ", Step{NameCaesar, Decode}, ""},
		{"", Step{}, errors.ErrCodeInvalidInput},
		{":encode", Step{}, errors.ErrCodeInvalidInput},
		{"enigma:encode", Step{}, errors.ErrCodeUnknownTransform},
		{"morse:sideways", Step{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStep(tt.in)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseStep(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPipelineRunAndReverse(t *testing.T) {
	steps, err := ParseSteps([]string{"caesar:encode", "base32", "binary:encode"})
	if err != nil {
		t.Fatal(err)
	}
	p := Pipeline{Steps: steps, Params: Params{Shift: 7}}
	if got := p.String(); got != "caesar:encode -> base32:encode -> binary:encode" {
		t.Errorf("String() = %q", got)
	}

	ctx := context.Background()
	enc, err := p.Run(ctx, "Attack at dawn")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	rev := p.Reverse()
	if got := rev.String(); got != "binary:decode -> base32:decode -> caesar:decode" {
		t.Errorf("Reverse().String() = %q", got)
	}
	dec, err := rev.Run(ctx, enc)
	if err != nil {
		t.Fatalf("reverse Run: %v", err)
	}
	if dec != "Attack at dawn" {
		t.Errorf("reverse Run = %q, want original", dec)
	}
}

func TestPipelineStepError(t *testing.T) {
	p := Pipeline{Steps: []Step{{NameBase64, Encode}, {NameBinary, Decode}}}
	_, err := p.Run(context.Background(), "hello")

	var stepErr *StepError
	if !stderrors.As(err, &stepErr) {
		t.Fatalf("error %v is not a *StepError", err)
	}
	if stepErr.Index != 2 || stepErr.Step.Transform != NameBinary {
		t.Errorf("failed step = %d %v, want 2 binary", stepErr.Index, stepErr.Step)
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want INVALID_FORMAT", errors.GetCode(err))
	}
}

func TestPipelineEmpty(t *testing.T) {
	_, err := Pipeline{}.Run(context.Background(), "x")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
