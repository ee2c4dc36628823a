package log

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/scitext/scitext/pkg/errors"
)

// UseZerologWarnings routes library warnings (DataConversionWarning and
// friends) through a zerolog logger writing to w. Warning types implementing
// zerolog.LogObjectMarshaler are emitted as structured events.
//
// The registration goes through errors.SetZerologWarnFunc to avoid a circular
// import between pkg/errors and pkg/log.
func UseZerologWarnings(w io.Writer) {
	zl := zerolog.New(w).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(warning error) {
		event := zl.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.EmbedObject(marshaler)
		}
		event.Msg(warning.Error())
	})
}
