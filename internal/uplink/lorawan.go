// Package uplink encodes telemetry frames as LoRaWAN unconfirmed data-up
// messages and ships them over UDP to a packet-forwarder style gateway. It
// is the optional long-range path next to the wired serial link.
package uplink

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"

	"github.com/brocaar/lorawan"

	"SonicRover/internal/model"
)

// Context holds the session keys and frame counter for one device address.
// FCnt increments on every encoded frame.
type Context struct {
	DevAddr lorawan.DevAddr
	AppSKey lorawan.AES128Key
	NwkSKey lorawan.AES128Key
	FPort   uint8
	FCnt    uint32
}

// ContextFromConfig parses the hex-encoded address and keys of an
// UplinkConfig.
func ContextFromConfig(cfg model.UplinkConfig) (Context, error) {
	var ctx Context
	if err := decodeHex(cfg.DevAddr, ctx.DevAddr[:]); err != nil {
		return Context{}, fmt.Errorf("dev_addr: %w", err)
	}
	if err := decodeHex(cfg.AppSKey, ctx.AppSKey[:]); err != nil {
		return Context{}, fmt.Errorf("app_skey: %w", err)
	}
	if err := decodeHex(cfg.NwkSKey, ctx.NwkSKey[:]); err != nil {
		return Context{}, fmt.Errorf("nwk_skey: %w", err)
	}
	ctx.FPort = cfg.FPort
	return ctx, nil
}

func decodeHex(s string, dst []byte) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(b))
	}
	copy(dst, b)
	return nil
}

// Encode builds one encrypted, MIC'd uplink PHYPayload around data and bumps
// the frame counter.
func (c *Context) Encode(data []byte) ([]byte, error) {
	c.FCnt++
	fPort := c.FPort
	phy := lorawan.PHYPayload{
		MHDR: lorawan.MHDR{
			MType: lorawan.UnconfirmedDataUp,
			Major: lorawan.LoRaWANR1,
		},
		MACPayload: &lorawan.MACPayload{
			FHDR: lorawan.FHDR{
				DevAddr: c.DevAddr,
				FCnt:    c.FCnt,
			},
			FPort:      &fPort,
			FRMPayload: []lorawan.Payload{&lorawan.DataPayload{Bytes: data}},
		},
	}

	if err := phy.EncryptFRMPayload(c.AppSKey); err != nil {
		return nil, fmt.Errorf("encrypt frame: %w", err)
	}
	// LoRaWAN 1.0: both integrity keys are the network session key
	if err := phy.SetUplinkDataMIC(lorawan.LoRaWAN1_0, 0, 0, 0, c.NwkSKey, c.NwkSKey); err != nil {
		return nil, fmt.Errorf("set mic: %w", err)
	}
	return phy.MarshalBinary()
}

// Sender couples a Context with a UDP destination.
type Sender struct {
	ctx  Context
	conn *net.UDPConn
}

// NewSender resolves addr and opens the UDP socket.
func NewSender(addr string, ctx Context) (*Sender, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve uplink addr %s: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, fmt.Errorf("dial uplink %s: %w", addr, err)
	}
	return &Sender{ctx: ctx, conn: conn}, nil
}

// Send marshals the frame as JSON, wraps it in a LoRaWAN uplink and writes
// it to the gateway socket.
func (s *Sender) Send(frame model.TelemetryFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	packet, err := s.ctx.Encode(data)
	if err != nil {
		return err
	}
	_, err = s.conn.Write(packet)
	return err
}

// Close releases the UDP socket.
func (s *Sender) Close() error {
	return s.conn.Close()
}
