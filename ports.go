package uart

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	json "github.com/goccy/go-json"
	"go.bug.st/serial/enumerator"
)

const (
	NoPortsMessage = "No serial ports were found!"
	notAvailable   = "n/a"
)

// allow tests to override external dependencies
var enumeratePorts = enumerator.GetDetailedPortsList

// PortRecord describes one serial device visible to the operating system.
type PortRecord struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	HardwareID   string `json:"hwid"`
	IsUSB        bool   `json:"usb"`
	VID          string `json:"vid,omitempty"`
	PID          string `json:"pid,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// ListPorts returns the serial ports currently known to the OS, sorted by name.
func ListPorts() ([]PortRecord, error) {
	details, err := enumeratePorts()
	if err != nil {
		return nil, fmt.Errorf("enumerating ports: %w", err)
	}

	records := make([]PortRecord, 0, len(details))
	for _, d := range details {
		if d == nil {
			continue
		}
		records = append(records, newPortRecord(d))
	}
	slices.SortFunc(records, func(a, b PortRecord) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return records, nil
}

func newPortRecord(d *enumerator.PortDetails) PortRecord {
	r := PortRecord{
		Name:        d.Name,
		Description: d.Product,
		HardwareID:  notAvailable,
		IsUSB:       d.IsUSB,
	}
	if r.Description == "" {
		r.Description = notAvailable
	}
	if d.IsUSB {
		r.VID = d.VID
		r.PID = d.PID
		r.SerialNumber = d.SerialNumber
		r.HardwareID = fmt.Sprintf("USB VID:PID=%s:%s", d.VID, d.PID)
		if d.SerialNumber != "" {
			r.HardwareID += " SER=" + d.SerialNumber
		}
	}
	return r
}

// WritePortList prints one "<path>: <description>" line per port followed by
// a summary line with every path, or NoPortsMessage when ports is empty.
func WritePortList(w io.Writer, ports []PortRecord) error {
	if len(ports) == 0 {
		_, err := fmt.Fprintln(w, NoPortsMessage)
		return err
	}

	names := make([]string, 0, len(ports))
	for _, p := range ports {
		if _, err := fmt.Fprintf(w, "%s: %s\n", p.Name, p.Description); err != nil {
			return err
		}
		names = append(names, p.Name)
	}
	_, err := fmt.Fprintf(w, "Available serial ports: %v\n", names)
	return err
}

// WritePortListJSON writes ports as an indented JSON array. An empty list
// is written as [].
func WritePortListJSON(w io.Writer, ports []PortRecord) error {
	if ports == nil {
		ports = []PortRecord{}
	}
	b, err := json.MarshalIndent(ports, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding port list: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
