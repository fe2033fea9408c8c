package launcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/spiralnet/launchpad/component"
	"github.com/spiralnet/launchpad/version"
)

// printSummary logs a compact overview of the running service: components,
// their endpoints and the startup duration.
func (l *Launcher) printSummary(elapsed time.Duration) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s (%s) serving on %s", l.cfg.Name, version.Short(), l.cfg.Environment, l.srv.Addr())

	for _, c := range l.registry.All() {
		d, ok := c.(component.Describable)
		if !ok {
			continue
		}
		desc := d.Describe()
		fmt.Fprintf(&b, "\n  %-14s %s", desc.Name, desc.Details)
		if rp, ok := c.(component.RouteProvider); ok {
			for _, r := range rp.Routes() {
				fmt.Fprintf(&b, "\n    %-7s %s", r.Method, r.Path)
			}
		}
	}
	fmt.Fprintf(&b, "\n  application    %s", l.handle.Ref())
	fmt.Fprintf(&b, "\n  started in     %s", elapsed.Round(time.Millisecond))

	l.log.Info(b.String())
}
