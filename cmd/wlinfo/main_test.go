package main

import (
	"bytes"
	"testing"

	wl "deedles.dev/wlui/client"
	"deedles.dev/wlui/event"
	"deedles.dev/wlui/eventloop"
	"github.com/stretchr/testify/assert"
)

func TestPrintGlobals(t *testing.T) {
	var buf bytes.Buffer
	printGlobals(&buf, map[uint32]wl.Interface{
		3: {Name: "xdg_wm_base", Version: 5},
		1: {Name: "wl_compositor", Version: 6},
	})

	assert.Equal(t, ""+
		"NAME  INTERFACE      VERSION\n"+
		"1     wl_compositor  6\n"+
		"3     xdg_wm_base    5\n", buf.String())
}

func TestDescribeOutput(t *testing.T) {
	info := event.OutputInfo{
		Make:           "Acme",
		Model:          "Panel",
		Width:          1920,
		Height:         1080,
		Refresh:        59940,
		Scale:          2,
		PhysicalWidth:  300,
		PhysicalHeight: 200,
	}
	assert.Equal(t, `"Acme Panel" 1920x1080@59.94Hz at 0,0, scale 2, 300x200mm`, describeOutput(info))

	info.Name = "DP-1"
	var buf bytes.Buffer
	printOutputs(&buf, []*eventloop.Output{{Name: 7, Info: info}})
	assert.Equal(t, `output 7: "DP-1" 1920x1080@59.94Hz at 0,0, scale 2, 300x200mm`+"\n", buf.String())
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, event.Seat{Seat: 4, Kind: event.CapabilityNew, Capability: event.CapabilityPointer})
	printEvent(&buf, event.Output{Output: 9, Kind: event.OutputRemove})
	printEvent(&buf, event.Keyboard{Kind: event.KeyPress})

	assert.Equal(t, "seat 4 gained pointer\noutput 9 removed\n", buf.String())
}
