package logger

import (
	"testing"

	"hireboard/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_ParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("ERROR"))
	assert.Equal(t, log.InfoLevel, ParseLevel(""))
	assert.Equal(t, log.InfoLevel, ParseLevel("verbose"))
}

func Test_PrometheusHook_CountsByErrorType(t *testing.T) {
	hook := &prometheusHook{}
	before := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeEmail))

	entry := log.NewEntry(log.StandardLogger()).WithField(ErrorTypeField, ErrorTypeEmail)
	assert.NoError(t, hook.Fire(entry))

	after := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues(ErrorTypeEmail))
	assert.Equal(t, before+1, after)
}

func Test_PrometheusHook_UnknownType(t *testing.T) {
	hook := &prometheusHook{}
	before := testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues("unknown"))

	assert.NoError(t, hook.Fire(log.NewEntry(log.StandardLogger())))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ErrorsCounter.WithLabelValues("unknown")))
}
