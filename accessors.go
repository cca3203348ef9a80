package f2

import "context"

// BLEDeviceExists reports whether a bluetooth adapter is attached.
func (c *Client) BLEDeviceExists(ctx context.Context) (bool, error) {
	return c.RequestBool(ctx, ParamBLEDeviceExists)
}

// Lowcut reports whether the lowcut filter is enabled.
func (c *Client) Lowcut(ctx context.Context) (bool, error) {
	return c.RequestBool(ctx, ParamLowcut)
}

// SetLowcut enables or disables the lowcut filter.
func (c *Client) SetLowcut(ctx context.Context, v bool) error {
	return c.ChangeBool(ctx, ParamLowcut, v)
}

// HeadphoneVolume returns the headphone output level.
func (c *Client) HeadphoneVolume(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamHeadphoneVolume)
}

// SetHeadphoneVolume sets the headphone output level.
func (c *Client) SetHeadphoneVolume(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamHeadphoneVolume, v)
}

// RecFormat returns the recording format index.
func (c *Client) RecFormat(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamRecFormat)
}

// SetRecFormat sets the recording format index.
func (c *Client) SetRecFormat(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamRecFormat, v)
}

// RecFilenameType returns whether files are named automatically or by the user prefix.
func (c *Client) RecFilenameType(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamRecFilenameType)
}

// SetRecFilenameType selects automatic or user file naming.
func (c *Client) SetRecFilenameType(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamRecFilenameType, v)
}

// RecFilenameAuto returns the file name prefix chosen by the device.
func (c *Client) RecFilenameAuto(ctx context.Context) (string, error) {
	return c.RequestText(ctx, ParamRecFilenameAuto)
}

// RecFilenameUser returns the user-defined file name prefix.
func (c *Client) RecFilenameUser(ctx context.Context) (string, error) {
	return c.RequestText(ctx, ParamRecFilenameUser)
}

// SetRecFilenameUser sets the user-defined file name prefix. Only the first
// six bytes are kept.
func (c *Client) SetRecFilenameUser(ctx context.Context, v string) error {
	return c.ChangeText(ctx, ParamRecFilenameUser, v)
}

// DateTime returns the raw date and time setting.
func (c *Client) DateTime(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamDateTime)
}

// BatteryType returns the configured battery type.
func (c *Client) BatteryType(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamBatteryType)
}

// SetBatteryType sets the battery type.
func (c *Client) SetBatteryType(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamBatteryType, v)
}

// AutoPowerOff returns the auto power-off setting.
func (c *Client) AutoPowerOff(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamAutoPowerOff)
}

// SetAutoPowerOff sets the auto power-off setting.
func (c *Client) SetAutoPowerOff(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamAutoPowerOff, v)
}

// Bluetooth returns the bluetooth function setting.
func (c *Client) Bluetooth(ctx context.Context) (byte, error) {
	return c.RequestUint(ctx, ParamBluetoothFunction)
}

// SetBluetooth sets the bluetooth function.
func (c *Client) SetBluetooth(ctx context.Context, v byte) error {
	return c.ChangeUint(ctx, ParamBluetoothFunction, v)
}

// AppStart tells the device a remote app connected.
func (c *Client) AppStart() error {
	return c.Send(KindAppStart)
}

// AppStop tells the device the remote app disconnected.
func (c *Client) AppStop() error {
	return c.Send(KindAppStop)
}

// UnmountCard unmounts the SD card.
func (c *Client) UnmountCard() error {
	return c.Send(KindUnmountCard)
}

// FormatCard formats the SD card.
func (c *Client) FormatCard() error {
	return c.Send(KindFormatCard)
}

// FactoryReset restores the factory settings.
func (c *Client) FactoryReset() error {
	return c.Send(KindFactoryReset)
}

// ForgetTimecode clears the stored timecode.
func (c *Client) ForgetTimecode() error {
	return c.Send(KindForgetTimecode)
}

// DeviceInfo is a summary of the device state.
type DeviceInfo struct {
	VersionBootloader []byte `yaml:"version_bootloader"`
	VersionFirmware   []byte `yaml:"version_firmware"`
	BLEDeviceExists   bool   `yaml:"ble_exists"`
	Lowcut            bool   `yaml:"lowcut"`
	HeadphoneVolume   byte   `yaml:"headphone_volume"`
	RecFormat         byte   `yaml:"rec_format"`
	RecFilenameType   byte   `yaml:"rec_filename_type"`
	RecFilenameAuto   string `yaml:"rec_filename_auto"`
	RecFilenameUser   string `yaml:"rec_filename_user"`
	DateTime          byte   `yaml:"datetime"`
	BatteryType       byte   `yaml:"battery_type"`
	AutoPowerOff      byte   `yaml:"auto_poweroff"`
	Bluetooth         byte   `yaml:"bluetooth"`
}

// Info queries every readable value. It stops at the first error.
func (c *Client) Info(ctx context.Context) (*DeviceInfo, error) {
	info := &DeviceInfo{}

	var err error

	steps := []func() error{
		func() error { info.VersionBootloader, err = c.RequestVersion(ctx, VersionBoot); return err },
		func() error { info.VersionFirmware, err = c.RequestVersion(ctx, VersionMain); return err },
		func() error { info.BLEDeviceExists, err = c.BLEDeviceExists(ctx); return err },
		func() error { info.Lowcut, err = c.Lowcut(ctx); return err },
		func() error { info.HeadphoneVolume, err = c.HeadphoneVolume(ctx); return err },
		func() error { info.RecFormat, err = c.RecFormat(ctx); return err },
		func() error { info.RecFilenameType, err = c.RecFilenameType(ctx); return err },
		func() error { info.RecFilenameAuto, err = c.RecFilenameAuto(ctx); return err },
		func() error { info.RecFilenameUser, err = c.RecFilenameUser(ctx); return err },
		func() error { info.DateTime, err = c.DateTime(ctx); return err },
		func() error { info.BatteryType, err = c.BatteryType(ctx); return err },
		func() error { info.AutoPowerOff, err = c.AutoPowerOff(ctx); return err },
		func() error { info.Bluetooth, err = c.Bluetooth(ctx); return err },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	return info, nil
}
