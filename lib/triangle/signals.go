package triangle

import (
	"os"
	"os/signal"

	"github.com/learnopengl/hellotriangle/lib/session"
	"golang.org/x/sys/unix"
)

// HandleSignals turns SIGINT and SIGTERM into a shutdown request, so the
// render loop still gets to release its resources. The returned function
// stops the handling.
func HandleSignals(sess *session.Session) func() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGINT, unix.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for sig := range ch {
			sess.RequestShutdown(sig.String())
		}
	}()

	return func() {
		signal.Stop(ch)
		close(ch)
		<-done
	}
}
