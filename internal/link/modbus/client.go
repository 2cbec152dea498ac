// internal/link/modbus/client.go
package modbus

import (
	"errors"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/goburrow/modbus"
)

// Conn is a single Modbus TCP connection to one PLC unit.
// It is not safe for concurrent use; the trigger loop is its only caller.
type Conn struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Host    string
	Port    uint16
	UnitID  uint8
	Timeout time.Duration

	// Frames is optional. When set, goburrow logs raw ADUs to it.
	Frames *log.Logger
}

// Endpoint returns host:port.
func (c Config) Endpoint() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// Dial opens a Modbus TCP connection. ONE attempt per call.
func Dial(cfg Config) (*Conn, error) {
	if cfg.Host == "" {
		return nil, errors.New("link modbus: host required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint())
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID
	h.Logger = cfg.Frames

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Conn{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// ReadHoldingRegisters issues FC 3 and returns the raw register bytes.
func (c *Conn) ReadHoldingRegisters(addr, qty uint16) ([]byte, error) {
	if c == nil || c.handler == nil {
		return nil, errors.New("link modbus: not connected")
	}
	return c.client.ReadHoldingRegisters(addr, qty)
}

// Close closes the TCP connection.
func (c *Conn) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// IsException reports whether err is a Modbus exception response from the device,
// as opposed to a transport fault.
func IsException(err error) bool {
	var mbErr *modbus.ModbusError
	return errors.As(err, &mbErr)
}
