package transcriber

import "runtime"

const (
	DeviceCUDA = "cuda"
	DeviceMPS  = "mps"
	DeviceCPU  = "cpu"

	PrecisionFloat16 = "float16"
	PrecisionFloat32 = "float32"

	// DeviceAuto leaves the choice to the machine running the model.
	DeviceAuto = "auto"
)

// Device is the compute target and the numeric precision that goes with it.
type Device struct {
	Name      string
	Precision string
}

func (d Device) Accelerated() bool {
	return d.Name != DeviceCPU
}

type lookPathFunc func(name string) (string, error)

// selectDevice resolves "auto" to cuda when nvidia-smi is on the PATH, to
// mps on Apple Silicon, and to cpu otherwise. Accelerated devices run in
// float16, cpu in float32.
func selectDevice(preference string, lookPath lookPathFunc) Device {
	return selectDeviceFor(preference, lookPath, runtime.GOOS, runtime.GOARCH)
}

func selectDeviceFor(preference string, lookPath lookPathFunc, goos, goarch string) Device {
	name := preference
	if name == "" || name == DeviceAuto {
		switch {
		case lookPath != nil && hasBinary(lookPath, "nvidia-smi"):
			name = DeviceCUDA
		case goos == "darwin" && goarch == "arm64":
			name = DeviceMPS
		default:
			name = DeviceCPU
		}
	}

	if name == DeviceCPU {
		return Device{Name: DeviceCPU, Precision: PrecisionFloat32}
	}
	return Device{Name: name, Precision: PrecisionFloat16}
}

func hasBinary(lookPath lookPathFunc, name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// remoteDevice is the device sent to a sidecar. "auto" is passed through so
// the sidecar detects its own hardware; precision is "auto" with it.
func remoteDevice(preference string) Device {
	if preference == "" || preference == DeviceAuto {
		return Device{Name: DeviceAuto, Precision: DeviceAuto}
	}
	return selectDeviceFor(preference, nil, "", "")
}
