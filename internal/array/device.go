package array

// Device represents the compute device for array operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// IsGPU reports whether the device is a GPU.
func (d Device) IsGPU() bool {
	return d == WebGPU
}
