package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hellotriangle_frames_drawn_total",
		Help: "Total number of frames drawn and swapped to the window",
	})
	ShaderBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hellotriangle_shader_builds_total",
		Help: "Total number of shader program builds by result",
	}, []string{"result"})
	FramebufferPixels = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hellotriangle_framebuffer_pixels",
		Help: "Current framebuffer size in pixels",
	}, []string{"dimension"})
)

func init() {
	ShaderBuilds.WithLabelValues("ok").Add(0)
	ShaderBuilds.WithLabelValues("failed").Add(0)
}

// ShaderBuilt counts one program build.
func ShaderBuilt(err error) {
	if err != nil {
		ShaderBuilds.WithLabelValues("failed").Inc()
		return
	}
	ShaderBuilds.WithLabelValues("ok").Inc()
}

func SetFramebufferSize(width, height int) {
	FramebufferPixels.WithLabelValues("width").Set(float64(width))
	FramebufferPixels.WithLabelValues("height").Set(float64(height))
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
