package refresh

// Driver is the small interface both refresh driver shapes satisfy,
// standing in for the tagged union (FixedInterval | ExternalVsync) named
// in the design notes as the alternative to a dynamic-dispatch trait
// object — Go's interface dispatch here costs the same one indirect call
// either shape would need, so there is no separate tagged-union type.
type Driver interface {
	// ObserveNextFrame arms cb to run the next time this view's refresh
	// source fires. FixedInterval keeps only the latest callback: a second
	// call before cb has run replaces it. ExternalVsync queues every
	// callback it is given, and each one runs on a later Tick.
	ObserveNextFrame(cb Callback)
}

var (
	_ Driver = (*FixedInterval)(nil)
	_ Driver = (*ExternalVsync)(nil)
)
