// Package grpcweb lets browsers call ClinicService over HTTP/1.1 using
// gRPC-Web framing with protobuf payloads.
package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"clinic-consent-api/internal/middleware"
	"clinic-consent-api/internal/rpc"
)

const (
	contentType = "application/grpc-web+proto"
	maxBody     = 1 << 20
)

// Bridge translates gRPC-Web (browser HTTP/1.1) to native gRPC.
type Bridge struct {
	conn     *grpc.ClientConn
	log      *logrus.Entry
	relayKey string
}

type Option func(*Bridge)

// WithRelayKey makes the bridge pass the browser address on, vouched for by
// key. The server's rate limiter must trust the same key.
func WithRelayKey(key string) Option {
	return func(b *Bridge) { b.relayKey = key }
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, log *logrus.Entry, opts ...Option) (*Bridge, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return NewWithConn(conn, log, opts...), nil
}

func NewWithConn(conn *grpc.ClientConn, log *logrus.Entry, opts ...Option) *Bridge {
	b := &Bridge{conn: conn, log: log}
	for _, o := range opts {
		o(b)
	}
	return b
}

func (b *Bridge) Close() error { return b.conn.Close() }

// Handler serves POST /clinic.v1.ClinicService/<Method>.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Grpc-Web, X-User-Agent, Authorization, x-grpc-web")
		w.Header().Set("Access-Control-Expose-Headers",
			"Grpc-Status, Grpc-Message, Grpc-Status-Details-Bin, grpc-status, grpc-message")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if !binaryGRPCWeb(r.Header.Get("Content-Type")) {
			http.Error(w, "expected application/grpc-web+proto", http.StatusUnsupportedMediaType)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/"+rpc.ServiceName+"/") {
			writeStatus(w, status.New(codes.Unimplemented, "unknown service"))
			return
		}

		b.log.WithField("method", r.URL.Path).Debug("grpc-web call")
		b.forward(w, r)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+5))
	if err != nil {
		writeStatus(w, status.New(codes.Internal, "read body failed"))
		return
	}
	payload, err := unframe(body)
	if err != nil {
		writeStatus(w, status.New(codes.InvalidArgument, err.Error()))
		return
	}

	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	}
	if b.relayKey != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			md.Set(middleware.RelayHeader, b.relayKey)
			md.Set(middleware.ForwardedHeader, host)
		}
	}
	ctx := metadata.NewOutgoingContext(r.Context(), md)

	// payload bytes pass through; the server decodes them with rpc.Codec
	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.log.WithFields(logrus.Fields{"method": r.URL.Path, "code": st.Code().String()}).Debug("grpc-web call failed")
		writeStatus(w, st)
		return
	}
	writeSuccess(w, resp.data)
}

// binaryGRPCWeb accepts the binary protobuf flavour only; grpc-web-text
// (base64) is not supported.
func binaryGRPCWeb(ct string) bool {
	ct, _, _ = strings.Cut(ct, ";")
	ct = strings.TrimSpace(ct)
	return ct == "application/grpc-web" || ct == contentType
}

// unframe reads one data frame: 1-byte flag, 4-byte big-endian length, body.
func unframe(body []byte) ([]byte, error) {
	if len(body) < 5 {
		return nil, fmt.Errorf("body too short")
	}
	if body[0]&0x80 != 0 {
		return nil, fmt.Errorf("unexpected trailer frame")
	}
	n := binary.BigEndian.Uint32(body[1:5])
	if n > maxBody || int(n)+5 > len(body) {
		return nil, fmt.Errorf("incomplete frame")
	}
	return body[5 : 5+n], nil
}

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

// rawMsg wraps encoded bytes that pass through untouched.
type rawMsg struct{ data []byte }

// rawCodec shares rpc.Codec's name so the call goes out as application/grpc+proto.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return rpc.CodecName }

func writeStatus(w http.ResponseWriter, st *status.Status) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x80, []byte(trailer(st))))
}

func trailer(st *status.Status) string {
	t := fmt.Sprintf("grpc-status:%d\r\ngrpc-message:%s\r\n", st.Code(), encodeMessage(st.Message()))
	if len(st.Details()) > 0 {
		if bin, err := proto.Marshal(st.Proto()); err == nil {
			t += "grpc-status-details-bin:" + base64.RawStdEncoding.EncodeToString(bin) + "\r\n"
		}
	}
	return t
}

// encodeMessage percent-encodes grpc-message the way gRPC over HTTP/2 does.
func encodeMessage(msg string) string {
	var sb strings.Builder
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c >= 0x20 && c <= 0x7e && c != '%' {
			sb.WriteByte(c)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", c)
	}
	return sb.String()
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x00, data))
	w.Write(frame(0x80, []byte("grpc-status:0\r\n")))
}
