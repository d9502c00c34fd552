package codec

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/snakecodec/pkg/errors"
)

// Step is one transform applied in one direction.
type Step struct {
	Transform string    `json:"transform"`
	Direction Direction `json:"direction"`
}

func (s Step) String() string {
	return s.Transform + ":" + s.Direction.String()
}

// ParseStep parses "name:direction", for example "base64:encode". A bare
// name means encode.
func ParseStep(s string) (Step, error) {
	name, dir, found := strings.Cut(strings.TrimSpace(s), ":")
	if name == "" {
		return Step{}, errors.New(errors.ErrCodeInvalidInput, "empty pipeline step %q", s)
	}
	t, ok := Lookup(name)
	if !ok {
		return Step{}, errors.New(errors.ErrCodeUnknownTransform, "unknown transform %q in step %q", name, s)
	}
	step := Step{Transform: t.Name(), Direction: Encode}
	if found {
		d, err := ParseDirection(dir)
		if err != nil {
			return Step{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "step %q", s)
		}
		step.Direction = d
	}
	return step, nil
}

// ParseSteps parses every element of specs with ParseStep.
func ParseSteps(specs []string) ([]Step, error) {
	steps := make([]Step, 0, len(specs))
	for _, spec := range specs {
		st, err := ParseStep(spec)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, nil
}

// Pipeline chains transforms. All steps share one Params value.
type Pipeline struct {
	Steps  []Step `json:"steps"`
	Params Params `json:"params"`
}

// Run feeds text through every step in order. A failure is returned as a
// *StepError wrapping the transform error.
func (p Pipeline) Run(ctx context.Context, text string) (string, error) {
	if len(p.Steps) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "pipeline has no steps")
	}
	out := text
	for i, st := range p.Steps {
		var err error
		out, err = Run(ctx, st.Transform, st.Direction, out, p.Params)
		if err != nil {
			return "", &StepError{Index: i + 1, Step: st, Err: err}
		}
	}
	return out, nil
}

// Reverse returns the pipeline that undoes p: steps in reverse order with
// every direction flipped.
func (p Pipeline) Reverse() Pipeline {
	steps := make([]Step, len(p.Steps))
	for i, st := range p.Steps {
		steps[len(p.Steps)-1-i] = Step{Transform: st.Transform, Direction: st.Direction.Flip()}
	}
	return Pipeline{Steps: steps, Params: p.Params}
}

// String renders the steps as "a:encode -> b:decode".
func (p Pipeline) String() string {
	parts := make([]string, len(p.Steps))
	for i, st := range p.Steps {
		parts[i] = st.String()
	}
	return strings.Join(parts, " -> ")
}

// StepError reports which pipeline step failed.
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

// Unwrap exposes the transform error, so errors.Is and errors.GetCode see
// its code.
func (e *StepError) Unwrap() error { return e.Err }
