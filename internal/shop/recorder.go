package shop

// Recorder receives counters about shop activity.
type Recorder interface {
	CartMutation(op string)
	Checkout(units int)
	Rejection(reason string)
	CartLines(n int)
}

type nopRecorder struct{}

func (nopRecorder) CartMutation(string) {}
func (nopRecorder) Checkout(int)        {}
func (nopRecorder) Rejection(string)    {}
func (nopRecorder) CartLines(int)       {}
