package clierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeOf(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", cause, ExitUnexpected},
		{"config", New(ExitConfig, "bad roster"), ExitConfig},
		{"wrapped twice", fmt.Errorf("outer: %w", Wrap(ExitRepoFailed, "batch", cause)), ExitRepoFailed},
		{"zero normalized", New(0, "oops"), ExitUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrapf(ExitConfig, cause, "loading %s", "repos.json")

	assert.Equal(t, "loading repos.json: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", Wrap(ExitConfig, "plain", nil).Error())
}
