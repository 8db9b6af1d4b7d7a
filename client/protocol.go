package wl

import "fmt"

// Interface describes a global advertised by the registry.
type Interface struct {
	Name    string
	Version uint32
}

// Is reports whether i is the named interface at at least the given
// version.
func (i Interface) Is(name string, version uint32) bool {
	return (i.Name == name) && (i.Version >= version)
}

func (i Interface) String() string {
	return fmt.Sprintf("%v v%v", i.Name, i.Version)
}

// bindVersion returns the version to bind a global at, which is the
// lower of what the server advertises and what this package supports.
func bindVersion(advertised, supported uint32) uint32 {
	return min(advertised, supported)
}

const (
	displayInterface    = "wl_display"
	registryInterface   = "wl_registry"
	callbackInterface   = "wl_callback"
	compositorInterface = "wl_compositor"
	surfaceInterface    = "wl_surface"
	seatInterface       = "wl_seat"
	pointerInterface    = "wl_pointer"
	keyboardInterface   = "wl_keyboard"
	outputInterface     = "wl_output"
	shmInterface        = "wl_shm"
	shmPoolInterface    = "wl_shm_pool"
	bufferInterface     = "wl_buffer"
)

const (
	compositorVersion = 5
	seatVersion       = 7
	outputVersion     = 4
	shmVersion        = 1
)

const (
	opDisplaySync        = 0
	opDisplayGetRegistry = 1

	evDisplayError    = 0
	evDisplayDeleteID = 1
)

const (
	opRegistryBind = 0

	evRegistryGlobal       = 0
	evRegistryGlobalRemove = 1
)

const evCallbackDone = 0

const (
	opCompositorCreateSurface = 0
	opCompositorCreateRegion  = 1
)

const (
	opSurfaceDestroy            = 0
	opSurfaceAttach             = 1
	opSurfaceDamage             = 2
	opSurfaceFrame              = 3
	opSurfaceSetOpaqueRegion    = 4
	opSurfaceSetInputRegion     = 5
	opSurfaceCommit             = 6
	opSurfaceSetBufferTransform = 7
	opSurfaceSetBufferScale     = 8
	opSurfaceDamageBuffer       = 9

	evSurfaceEnter = 0
	evSurfaceLeave = 1
)

const (
	opSeatGetPointer  = 0
	opSeatGetKeyboard = 1
	opSeatGetTouch    = 2
	opSeatRelease     = 3

	evSeatCapabilities = 0
	evSeatName         = 1
)

const (
	opPointerSetCursor = 0
	opPointerRelease   = 1

	evPointerEnter        = 0
	evPointerLeave        = 1
	evPointerMotion       = 2
	evPointerButton       = 3
	evPointerAxis         = 4
	evPointerFrame        = 5
	evPointerAxisSource   = 6
	evPointerAxisStop     = 7
	evPointerAxisDiscrete = 8
)

const (
	opKeyboardRelease = 0

	evKeyboardKeymap     = 0
	evKeyboardEnter      = 1
	evKeyboardLeave      = 2
	evKeyboardKey        = 3
	evKeyboardModifiers  = 4
	evKeyboardRepeatInfo = 5
)

const (
	opOutputRelease = 0

	evOutputGeometry    = 0
	evOutputMode        = 1
	evOutputDone        = 2
	evOutputScale       = 3
	evOutputName        = 4
	evOutputDescription = 5
)

const (
	opShmCreatePool = 0

	evShmFormat = 0
)

const (
	opShmPoolCreateBuffer = 0
	opShmPoolDestroy      = 1
	opShmPoolResize       = 2
)

const (
	opBufferDestroy = 0

	evBufferRelease = 0
)

// SeatCapability is a bitmask of the input devices available on a
// seat.
type SeatCapability uint32

const (
	SeatCapabilityPointer SeatCapability = 1 << iota
	SeatCapabilityKeyboard
	SeatCapabilityTouch
)

func (c SeatCapability) Has(o SeatCapability) bool {
	return c&o == o
}

type PointerButtonState uint32

const (
	PointerButtonStateReleased PointerButtonState = iota
	PointerButtonStatePressed
)

type PointerAxis uint32

const (
	PointerAxisVerticalScroll PointerAxis = iota
	PointerAxisHorizontalScroll
)

type PointerAxisSource uint32

const (
	PointerAxisSourceWheel PointerAxisSource = iota
	PointerAxisSourceFinger
	PointerAxisSourceContinuous
	PointerAxisSourceWheelTilt
)

func (s PointerAxisSource) String() string {
	switch s {
	case PointerAxisSourceWheel:
		return "wheel"
	case PointerAxisSourceFinger:
		return "finger"
	case PointerAxisSourceContinuous:
		return "continuous"
	case PointerAxisSourceWheelTilt:
		return "wheel tilt"
	}
	return fmt.Sprintf("PointerAxisSource(%d)", uint32(s))
}

type KeyboardKeymapFormat uint32

const (
	KeyboardKeymapFormatNoKeymap KeyboardKeymapFormat = iota
	KeyboardKeymapFormatXkbV1
)

type KeyboardKeyState uint32

const (
	KeyboardKeyStateReleased KeyboardKeyState = iota
	KeyboardKeyStatePressed
)

type OutputTransform int32

const (
	OutputTransformNormal OutputTransform = iota
	OutputTransform90
	OutputTransform180
	OutputTransform270
	OutputTransformFlipped
	OutputTransformFlipped90
	OutputTransformFlipped180
	OutputTransformFlipped270
)

type OutputMode uint32

const (
	OutputModeCurrent OutputMode = 1 << iota
	OutputModePreferred
)

type ShmFormat uint32

const (
	ShmFormatArgb8888 ShmFormat = 0
	ShmFormatXrgb8888 ShmFormat = 1
)
