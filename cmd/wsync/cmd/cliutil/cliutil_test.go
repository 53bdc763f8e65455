package cliutil

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"whisper-sync/internal/app/errors"
	"whisper-sync/internal/config"
)

func TestUserError(t *testing.T) {
	assert.NoError(t, UserError(nil))

	err := UserError(errors.WrapKind(stderrors.New("401 sk-secret"), errors.KindRequestFailed, "openai"))
	assert.EqualError(t, err, errors.KindRequestFailed.UserMessage())

	err = UserError(errors.ErrMissingCredential)
	assert.EqualError(t, err, errors.KindMissingInput.UserMessage())

	plain := stderrors.New("stat talk.mp3: no such file")
	assert.Same(t, plain, UserError(plain))
}

func TestFileMedia(t *testing.T) {
	cfg := config.Default()
	FileMedia(cfg)
	assert.Equal(t, "file", cfg.Media.Backend)
	assert.NoError(t, cfg.Validate())
}
