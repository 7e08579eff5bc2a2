package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitWithWriter(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	InitWithWriter(&buf, "events-api", false)

	log.Debug().Msg("hidden")
	log.Info().Str("path", "/api/index").Msg("served")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| served")
	assert.Contains(t, out, "service:events-api")
	assert.Contains(t, out, "path:/api/index")

	buf.Reset()
	InitWithWriter(&buf, "events-api", true)
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}
