package f2

import "fmt"

// ManufacturerID identifies the vendor a frame is addressed to or sent by.
type ManufacturerID byte

// Known manufacturers.
const (
	ManufacturerZoom      ManufacturerID = 82
	ManufacturerUniversal ManufacturerID = 126
)

// String returns the manufacturer name.
func (m ManufacturerID) String() string {
	switch m {
	case ManufacturerZoom:
		return "zoom"
	case ManufacturerUniversal:
		return "universal"
	default:
		return fmt.Sprintf("manufacturer(%d)", byte(m))
	}
}

// DeviceID identifies the device model.
type DeviceID byte

// Known devices.
const (
	DeviceUniversal DeviceID = 6
	DeviceF2        DeviceID = 116
)

// String returns the device name.
func (d DeviceID) String() string {
	switch d {
	case DeviceUniversal:
		return "universal"
	case DeviceF2:
		return "f2"
	default:
		return fmt.Sprintf("device(%d)", byte(d))
	}
}

var fingerprint = [...]byte{byte(ManufacturerZoom), byte(DeviceF2), 0, 1, 0}

// DeviceFingerprint returns the identity payload reported by a Zoom F2.
func DeviceFingerprint() []byte {
	return append([]byte(nil), fingerprint[:]...)
}

// Code is an optional kind code. A code that is not valid means the kind is
// never sent (request) or never received (response).
type Code struct {
	Value byte
	Valid bool
}

func code(v byte) Code {
	return Code{Value: v, Valid: true}
}

// MessageKind is the semantic category of a frame.
type MessageKind struct {
	Name     string
	Request  Code
	Response Code
}

func (k MessageKind) String() string {
	return k.Name
}

// The message kinds understood by the F2.
var (
	KindIdentity        = MessageKind{Name: "identity", Request: code(1), Response: code(2)}
	KindFirmwareVersion = MessageKind{Name: "firmware-version", Request: code(16), Response: code(17)}
	KindParameter       = MessageKind{Name: "parameter", Request: code(70), Response: code(69)}
	KindParameterChange = MessageKind{Name: "parameter-change", Request: code(49)}
	KindResponse        = MessageKind{Name: "response", Response: code(0)}
	KindAppStart        = MessageKind{Name: "app-start", Request: code(82)}
	KindAppStop         = MessageKind{Name: "app-stop", Request: code(83)}
	KindUnmountCard     = MessageKind{Name: "unmount-card", Request: code(105)}
	KindFormatCard      = MessageKind{Name: "format-card", Request: code(102)}
	KindFactoryReset    = MessageKind{Name: "factory-reset", Request: code(103)}
	KindForgetTimecode  = MessageKind{Name: "forget-timecode", Request: code(104)}
)

// Kinds lists every known kind.
var Kinds = []MessageKind{
	KindIdentity,
	KindFirmwareVersion,
	KindParameter,
	KindParameterChange,
	KindResponse,
	KindAppStart,
	KindAppStop,
	KindUnmountCard,
	KindFormatCard,
	KindFactoryReset,
	KindForgetTimecode,
}

// KindByResponse returns the kind whose response code equals c.
func KindByResponse(c byte) (MessageKind, bool) {
	for _, k := range Kinds {
		if k.Response.Valid && k.Response.Value == c {
			return k, true
		}
	}

	return MessageKind{}, false
}

// KindByRequest returns the kind whose request code equals c.
func KindByRequest(c byte) (MessageKind, bool) {
	for _, k := range Kinds {
		if k.Request.Valid && k.Request.Value == c {
			return k, true
		}
	}

	return MessageKind{}, false
}

// ValueType describes how a parameter value is carried in a payload.
type ValueType int

// The different value types.
const (
	ValueBool ValueType = iota
	ValueUint
	ValueText
)

// Parameter is a device-settable field. The request and response ids are
// carried as the first payload byte, not as the frame kind.
type Parameter struct {
	Name       string
	RequestID  byte
	ResponseID byte
	Type       ValueType

	// Writable parameters can be changed with a parameter-change frame.
	Writable bool

	// Text parameters are written with Significant bytes, zero padded to
	// Width.
	Significant int
	Width       int
}

func (p Parameter) String() string {
	return p.Name
}

func parameter(name string, id byte, t ValueType, writable bool) Parameter {
	return Parameter{
		Name:       name,
		RequestID:  id,
		ResponseID: id + 16,
		Type:       t,
		Writable:   writable,
	}
}

// The parameters of the F2.
var (
	ParamBLEDeviceExists   = parameter("ble-device-exists", 0, ValueBool, false)
	ParamLowcut            = parameter("lowcut", 1, ValueBool, true)
	ParamHeadphoneVolume   = parameter("headphone-volume", 2, ValueUint, true)
	ParamRecFormat         = parameter("rec-format", 3, ValueUint, true)
	ParamRecFilenameType   = parameter("rec-filename-type", 4, ValueUint, true)
	ParamRecFilenameAuto   = parameter("rec-filename-auto", 5, ValueText, false)
	ParamRecFilenameUser   = Parameter{Name: "rec-filename-user", RequestID: 6, ResponseID: 22, Type: ValueText, Writable: true, Significant: 6, Width: 50}
	ParamDateTime          = parameter("datetime", 7, ValueUint, false)
	ParamBatteryType       = parameter("battery-type", 8, ValueUint, true)
	ParamAutoPowerOff      = parameter("auto-poweroff", 9, ValueUint, true)
	ParamBluetoothFunction = parameter("bluetooth-function", 10, ValueUint, true)
)

// Parameters lists every known parameter.
var Parameters = []Parameter{
	ParamBLEDeviceExists,
	ParamLowcut,
	ParamHeadphoneVolume,
	ParamRecFormat,
	ParamRecFilenameType,
	ParamRecFilenameAuto,
	ParamRecFilenameUser,
	ParamDateTime,
	ParamBatteryType,
	ParamAutoPowerOff,
	ParamBluetoothFunction,
}

// ParameterByRequestID returns the parameter with the given request id.
func ParameterByRequestID(id byte) (Parameter, bool) {
	for _, p := range Parameters {
		if p.RequestID == id {
			return p, true
		}
	}

	return Parameter{}, false
}

// VersionKind selects which firmware version is queried.
type VersionKind byte

// The different firmware images.
const (
	VersionBoot VersionKind = 0
	VersionMain VersionKind = 1
)

// Message contains a decoded representation of a SysEx frame.
type Message struct {
	Manufacturer ManufacturerID
	Device       DeviceID
	Kind         MessageKind
	Payload      []byte
}

func (m Message) String() string {
	return fmt.Sprintf("%s/%s/%s %v", m.Manufacturer, m.Device, m.Kind, m.Payload)
}

// ParameterByName returns the parameter with the given name.
func ParameterByName(name string) (Parameter, bool) {
	for _, p := range Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return Parameter{}, false
}
