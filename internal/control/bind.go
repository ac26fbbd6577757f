package control

import "github.com/jmylchreest/devconsole/internal/store"

// Bind wires the controller's hint to s so that every append or clear
// re-evaluates it before the store call returns. The returned function
// detaches the binding.
func Bind(s *store.Store, c *Controller) (cancel func()) {
	return s.OnChange(func(store.ChangeEvent) {
		c.OnLogCountChanged()
	})
}
