package f2

import (
	"bytes"
	"fmt"
)

// Identity is the key pairing a request with its reply. The prefix
// disambiguates replies that share manufacturer, device and kind.
type Identity struct {
	Manufacturer ManufacturerID
	Device       DeviceID
	Kind         MessageKind
	Prefix       []byte
}

// IdentityOf returns the identity of a message with an empty prefix.
func IdentityOf(m Message) Identity {
	return Identity{
		Manufacturer: m.Manufacturer,
		Device:       m.Device,
		Kind:         m.Kind,
	}
}

// WithPrefix returns a copy of the identity using the given prefix.
func (i Identity) WithPrefix(prefix ...byte) Identity {
	i.Prefix = append([]byte(nil), prefix...)

	return i
}

// Matches reports whether m satisfies the identity.
func (i Identity) Matches(m Message) bool {
	return i.Manufacturer == m.Manufacturer &&
		i.Device == m.Device &&
		i.Kind == m.Kind &&
		bytes.HasPrefix(m.Payload, i.Prefix)
}

// Key returns a comparable representation, used to index pending requests.
func (i Identity) Key() string {
	return fmt.Sprintf("%d/%d/%s/%x", i.Manufacturer, i.Device, i.Kind.Name, i.Prefix)
}

func (i Identity) String() string {
	return fmt.Sprintf("%s/%s/%s %v", i.Manufacturer, i.Device, i.Kind, i.Prefix)
}
