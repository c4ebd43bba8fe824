package playback

import (
	"time"
	"weak"
)

// Delegate receives lifecycle and progress notifications. Every method is
// called on the controller's executor goroutine, so implementations may call
// controller commands directly.
type Delegate interface {
	DidHandleInitializationError(c *Controller, err error)
	DidFetchItemDuration(c *Controller, duration time.Duration)
	DidChangePlaybackState(c *Controller)
	DidChangeBufferingState(c *Controller)
	DidBeginPlayingFromBeginning(c *Controller)
	DidUpdateProgress(position, duration time.Duration)
	DidFinishPlaying(c *Controller)
}

// DataSource supplies the title of the media a controller is playing.
type DataSource interface {
	MediaTitle(c *Controller) string
}

// DelegateRef resolves the registered delegate. It reports false once the
// delegate is gone, in which case nothing is delivered.
type DelegateRef func() (Delegate, bool)

// DataSourceRef resolves the registered data source.
type DataSourceRef func() (DataSource, bool)

// WeakDelegate registers d without keeping it alive.
func WeakDelegate[T any, P interface {
	*T
	Delegate
}](d P) DelegateRef {
	ptr := (*T)(d)
	if ptr == nil {
		return nil
	}
	wp := weak.Make(ptr)
	return func() (Delegate, bool) {
		v := wp.Value()
		if v == nil {
			return nil, false
		}
		return P(v), true
	}
}

// WeakDataSource registers ds without keeping it alive.
func WeakDataSource[T any, P interface {
	*T
	DataSource
}](ds P) DataSourceRef {
	ptr := (*T)(ds)
	if ptr == nil {
		return nil
	}
	wp := weak.Make(ptr)
	return func() (DataSource, bool) {
		v := wp.Value()
		if v == nil {
			return nil, false
		}
		return P(v), true
	}
}

// StrongDelegate registers a delegate whose lifetime the caller already
// manages elsewhere, such as a value type or a long-lived adapter.
func StrongDelegate(d Delegate) DelegateRef {
	if d == nil {
		return nil
	}
	return func() (Delegate, bool) { return d, true }
}

// StrongDataSource is the DataSource counterpart of StrongDelegate.
func StrongDataSource(ds DataSource) DataSourceRef {
	if ds == nil {
		return nil
	}
	return func() (DataSource, bool) { return ds, true }
}

// BaseDelegate implements Delegate with no-ops. Embed it to handle only
// a subset of the notifications.
type BaseDelegate struct{}

func (BaseDelegate) DidHandleInitializationError(*Controller, error) {}
func (BaseDelegate) DidFetchItemDuration(*Controller, time.Duration) {}
func (BaseDelegate) DidChangePlaybackState(*Controller) {}
func (BaseDelegate) DidChangeBufferingState(*Controller) {}
func (BaseDelegate) DidBeginPlayingFromBeginning(*Controller) {}
func (BaseDelegate) DidUpdateProgress(time.Duration, time.Duration) {}
func (BaseDelegate) DidFinishPlaying(*Controller) {}
