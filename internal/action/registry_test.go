// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package action

import (
	"context"
	"errors"
	"testing"

	"github.com/matt-FFFFFF/clitools/internal/argument"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tool struct {
	calls []string
}

func (t *tool) greet(_ context.Context, kwargs Kwargs) error {
	t.calls = append(t.calls, "greet:"+kwargs.String("name"))
	return nil
}

func (t *tool) fail(context.Context, Kwargs) error {
	return errors.New("boom")
}

var (
	nameArg  = &argument.Spec{Key: "name", Description: "Name", Flags: []string{"--name"}, ActionKwarg: true}
	forceArg = &argument.Spec{Key: "force", Description: "Force", Flags: []string{"--force"}, Type: argument.Switch, ActionKwarg: true}
)

func TestRegister(t *testing.T) {
	r := NewRegistry[*tool]("tool", "A tool.")

	d, err := r.Register(Definition[*tool]{
		Name:              "greet",
		Doc:               "  Print a greeting.\n\nMore detail.  ",
		Group:             "basics",
		Arguments:         []*argument.Spec{nameArg},
		OptionalArguments: []*argument.Spec{forceArg},
		Func:              (*tool).greet,
	})
	require.NoError(t, err)

	assert.Equal(t, "greet", d.Name)
	assert.Equal(t, "Print a greeting.\n\nMore detail.", d.Doc)
	assert.Equal(t, "Print a greeting.", d.Usage())
	assert.Equal(t, []*argument.Spec{nameArg, forceArg}, d.AllArguments())
	assert.True(t, d.IsOptionalGroup(forceArg))
	assert.False(t, d.IsOptionalGroup(nameArg))

	got, ok := r.Lookup("greet")
	require.True(t, ok)
	assert.Same(t, d, got)

	assert.Equal(t, "tool", r.Name())
	assert.Equal(t, "A tool.", r.Doc())
	require.Len(t, r.Describe(), 1)
	assert.Equal(t, "basics", r.Describe()[0].Group)
}

func TestNewRegistry_TrimsDoc(t *testing.T) {
	r := NewRegistry[*tool]("tool", `
A tool.

It has a longer description.
`)

	assert.Equal(t, "A tool.\n\nIt has a longer description.", r.Doc())
}

func TestRegister_Validation(t *testing.T) {
	r := NewRegistry[*tool]("tool", "")
	r.MustRegister(Definition[*tool]{Name: "greet", Doc: "Greet.", Func: (*tool).greet})

	tests := []struct {
		name     string
		def      Definition[*tool]
		wantErrs []error
	}{
		{
			name:     "undocumented",
			def:      Definition[*tool]{Name: "quiet", Func: (*tool).greet},
			wantErrs: []error{ErrUndocumented},
		},
		{
			name:     "whitespace doc",
			def:      Definition[*tool]{Name: "quiet", Doc: " \n\t", Func: (*tool).greet},
			wantErrs: []error{ErrUndocumented},
		},
		{
			name:     "no name and no func",
			def:      Definition[*tool]{Doc: "Doc."},
			wantErrs: []error{ErrNoName, ErrNoFunc},
		},
		{
			name:     "duplicate action",
			def:      Definition[*tool]{Name: "greet", Doc: "Again.", Func: (*tool).greet},
			wantErrs: []error{ErrDuplicateAction},
		},
		{
			name: "duplicate key",
			def: Definition[*tool]{
				Name:      "dup",
				Doc:       "Dup.",
				Func:      (*tool).greet,
				Arguments: []*argument.Spec{nameArg, {Key: "name", Flags: []string{"--other"}}},
			},
			wantErrs: []error{ErrDuplicateArgument},
		},
		{
			name: "no flags and nil argument",
			def: Definition[*tool]{
				Name:      "bad",
				Func:      (*tool).greet,
				Arguments: []*argument.Spec{{Key: "x"}, nil},
			},
			wantErrs: []error{ErrUndocumented, ErrNoFlags, ErrNilArgument},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.Register(tt.def)
			require.Error(t, err)
			assert.Nil(t, d)

			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	assert.Len(t, r.Actions(), 1)
}

func TestRegister_SameSpecInBothLists(t *testing.T) {
	r := NewRegistry[*tool]("tool", "")

	_, err := r.Register(Definition[*tool]{
		Name:              "greet",
		Doc:               "Greet.",
		Func:              (*tool).greet,
		Arguments:         []*argument.Spec{nameArg, forceArg},
		OptionalArguments: []*argument.Spec{forceArg},
	})
	require.NoError(t, err)
}

func TestMustRegister_PanicsWhenUndocumented(t *testing.T) {
	r := NewRegistry[*tool]("tool", "")

	assert.PanicsWithValue(t,
		`registering action "quiet" in "tool": 1 error occurred:`+"\n\t* action is not documented: quiet\n\n",
		func() {
			r.MustRegister(Definition[*tool]{Name: "quiet", Func: (*tool).greet})
		})
	assert.Empty(t, r.Actions())
}

func TestBindAndCall(t *testing.T) {
	r := NewRegistry[*tool]("tool", "")
	greet := r.MustRegister(Definition[*tool]{Name: "greet", Doc: "Greet.", Func: (*tool).greet})
	r.MustRegister(Definition[*tool]{Name: "fail", Doc: "Fail.", Func: (*tool).fail})

	recv := &tool{}
	bound := r.Bind(recv)
	require.Len(t, bound, 2)
	assert.Equal(t, "greet", bound[0].Name)
	assert.Equal(t, "fail", bound[1].Name)

	require.NoError(t, bound[0].Call(context.Background(), Kwargs{"name": "abc"}))
	require.NoError(t, greet.Call(recv, context.Background(), Kwargs{"name": "def"}))
	assert.Equal(t, []string{"greet:abc", "greet:def"}, recv.calls)

	assert.EqualError(t, bound[1].Call(context.Background(), nil), "boom")
}
