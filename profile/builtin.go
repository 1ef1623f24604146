package profile

var builtin = map[string]Profile{
	"generic-dimmer": {
		Name: "Generic single channel dimmer",
		Channels: map[string]int{
			ChannelTypeIntensity: 1,
		},
	},
	"generic-rgb": {
		Name: "Generic RGB",
		Channels: map[string]int{
			ChannelTypeRed:   1,
			ChannelTypeGreen: 2,
			ChannelTypeBlue:  3,
		},
	},
	"generic-rgbw": {
		Name: "Generic RGBW",
		Channels: map[string]int{
			ChannelTypeRed:   1,
			ChannelTypeGreen: 2,
			ChannelTypeBlue:  3,
			ChannelTypeWhite: 4,
		},
	},
	"shehds-par": {
		Name: "Shehds LED Flat PAR 12x3W RGBW",
		Channels: map[string]int{
			ChannelTypeIntensity:      1,
			ChannelTypeRed:            2,
			ChannelTypeGreen:          3,
			ChannelTypeBlue:           4,
			ChannelTypeWhite:          5,
			ChannelTypeStrobe:         6,
			ChannelTypeFunctionSelect: 7,
			ChannelTypeUnknown:        8,
		},
	},
	"shehds-led-spot-60w": {
		Name: "Shehds LED Spot 60W",
		// 10 channel mode
		Channels: map[string]int{
			ChannelTypePan:            1,
			ChannelTypeTilt:           2,
			ChannelTypeColor:          3,
			ChannelTypeGobo:           4,
			ChannelTypeStrobe:         5,
			ChannelTypeIntensity:      6,
			ChannelTypeMotorSpeed:     7,
			ChannelTypeFunctionSelect: 8,
			ChannelTypeReset:          9,
		},
	},
	"shehds-led-wash-7x18w-rgbwa-uv": {
		Name: "Shehds LED Wash 7x18W RGBWA+UV",
		// 10 channel mode
		Channels: map[string]int{
			ChannelTypePan:       1,
			ChannelTypeTilt:      2,
			ChannelTypeIntensity: 3,
			ChannelTypeRed:       4,
			ChannelTypeGreen:     5,
			ChannelTypeBlue:      6,
			ChannelTypeWhite:     7,
			ChannelTypeAmber:     8,
			ChannelTypeUV:        9,
			ChannelTypeUnknown:   10,
		},
	},
	"shehds-led-bar-beam-8x12w": {
		Name: "Shehds LED Bar Beam 8x12W RGBW",
		// 9 channel mode
		Channels: map[string]int{
			ChannelTypeTilt:           1,
			ChannelTypeTiltSpeed:      2,
			ChannelTypeFunctionSelect: 3,
			ChannelTypeFunctionSpeed:  4,
			ChannelTypeIntensity:      5,
			ChannelTypeRed:            6,
			ChannelTypeGreen:          7,
			ChannelTypeBlue:           8,
			ChannelTypeWhite:          9,
		},
	},
}
