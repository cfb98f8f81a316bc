// Package rpc declares the ClinicService gRPC contract: its messages, the
// service descriptor and a typed client.
package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "clinic.v1.ClinicService"

// FullMethod returns the gRPC path of a ClinicService method.
func FullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

type ClinicServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetMyDetails(context.Context, *GetMyDetailsRequest) (*AccountDetails, error)
	UpdateMyDetails(context.Context, *UpdateMyDetailsRequest) (*AccountDetails, error)
	ListSpecializations(context.Context, *ListSpecializationsRequest) (*ListSpecializationsResponse, error)
	ListBookableDates(context.Context, *ListBookableDatesRequest) (*ListBookableDatesResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*BookAppointmentResponse, error)
	ListMyAppointments(context.Context, *ListMyAppointmentsRequest) (*ListMyAppointmentsResponse, error)
	CancelAppointment(context.Context, *CancelAppointmentRequest) (*CancelAppointmentResponse, error)
	AddConsultation(context.Context, *AddConsultationRequest) (*AddConsultationResponse, error)
	ListConsultedAppointments(context.Context, *ListConsultedAppointmentsRequest) (*ListConsultedAppointmentsResponse, error)
	ListMyConsultations(context.Context, *ListMyConsultationsRequest) (*ListMyConsultationsResponse, error)
	RequestAccess(context.Context, *RequestAccessRequest) (*RequestAccessResponse, error)
	SubmitAccessCode(context.Context, *SubmitAccessCodeRequest) (*SubmitAccessCodeResponse, error)
	CancelAccess(context.Context, *CancelAccessRequest) (*CancelAccessResponse, error)
	ListAccessRequests(context.Context, *ListAccessRequestsRequest) (*ListAccessRequestsResponse, error)
	RegisterPhysician(context.Context, *RegisterPhysicianRequest) (*RegisterPhysicianResponse, error)
}

func unary[Req, Resp any](name string, call func(ClinicServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	full := FullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, ic grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			h := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClinicServer), ctx, req.(*Req))
			}
			if ic == nil {
				return h(ctx, in)
			}
			return ic(ctx, in, &grpc.UnaryServerInfo{Server: srv, FullMethod: full}, h)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClinicServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", ClinicServer.Register),
		unary("Login", ClinicServer.Login),
		unary("Logout", ClinicServer.Logout),
		unary("GetMyDetails", ClinicServer.GetMyDetails),
		unary("UpdateMyDetails", ClinicServer.UpdateMyDetails),
		unary("ListSpecializations", ClinicServer.ListSpecializations),
		unary("ListBookableDates", ClinicServer.ListBookableDates),
		unary("BookAppointment", ClinicServer.BookAppointment),
		unary("ListMyAppointments", ClinicServer.ListMyAppointments),
		unary("CancelAppointment", ClinicServer.CancelAppointment),
		unary("AddConsultation", ClinicServer.AddConsultation),
		unary("ListConsultedAppointments", ClinicServer.ListConsultedAppointments),
		unary("ListMyConsultations", ClinicServer.ListMyConsultations),
		unary("RequestAccess", ClinicServer.RequestAccess),
		unary("SubmitAccessCode", ClinicServer.SubmitAccessCode),
		unary("CancelAccess", ClinicServer.CancelAccess),
		unary("ListAccessRequests", ClinicServer.ListAccessRequests),
		unary("RegisterPhysician", ClinicServer.RegisterPhysician),
	},
	Metadata: "api/clinic/v1/clinic.proto",
}

func RegisterClinicServer(s grpc.ServiceRegistrar, srv ClinicServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls ClinicService over protobuf.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c, "Register", in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c, "Login", in, opts)
}

func (c *Client) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c, "Logout", in, opts)
}

func (c *Client) GetMyDetails(ctx context.Context, in *GetMyDetailsRequest, opts ...grpc.CallOption) (*AccountDetails, error) {
	return invoke[AccountDetails](ctx, c, "GetMyDetails", in, opts)
}

func (c *Client) UpdateMyDetails(ctx context.Context, in *UpdateMyDetailsRequest, opts ...grpc.CallOption) (*AccountDetails, error) {
	return invoke[AccountDetails](ctx, c, "UpdateMyDetails", in, opts)
}

func (c *Client) ListSpecializations(ctx context.Context, in *ListSpecializationsRequest, opts ...grpc.CallOption) (*ListSpecializationsResponse, error) {
	return invoke[ListSpecializationsResponse](ctx, c, "ListSpecializations", in, opts)
}

func (c *Client) ListBookableDates(ctx context.Context, in *ListBookableDatesRequest, opts ...grpc.CallOption) (*ListBookableDatesResponse, error) {
	return invoke[ListBookableDatesResponse](ctx, c, "ListBookableDates", in, opts)
}

func (c *Client) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*BookAppointmentResponse, error) {
	return invoke[BookAppointmentResponse](ctx, c, "BookAppointment", in, opts)
}

func (c *Client) ListMyAppointments(ctx context.Context, in *ListMyAppointmentsRequest, opts ...grpc.CallOption) (*ListMyAppointmentsResponse, error) {
	return invoke[ListMyAppointmentsResponse](ctx, c, "ListMyAppointments", in, opts)
}

func (c *Client) CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*CancelAppointmentResponse, error) {
	return invoke[CancelAppointmentResponse](ctx, c, "CancelAppointment", in, opts)
}

func (c *Client) AddConsultation(ctx context.Context, in *AddConsultationRequest, opts ...grpc.CallOption) (*AddConsultationResponse, error) {
	return invoke[AddConsultationResponse](ctx, c, "AddConsultation", in, opts)
}

func (c *Client) ListConsultedAppointments(ctx context.Context, in *ListConsultedAppointmentsRequest, opts ...grpc.CallOption) (*ListConsultedAppointmentsResponse, error) {
	return invoke[ListConsultedAppointmentsResponse](ctx, c, "ListConsultedAppointments", in, opts)
}

func (c *Client) ListMyConsultations(ctx context.Context, in *ListMyConsultationsRequest, opts ...grpc.CallOption) (*ListMyConsultationsResponse, error) {
	return invoke[ListMyConsultationsResponse](ctx, c, "ListMyConsultations", in, opts)
}

func (c *Client) RequestAccess(ctx context.Context, in *RequestAccessRequest, opts ...grpc.CallOption) (*RequestAccessResponse, error) {
	return invoke[RequestAccessResponse](ctx, c, "RequestAccess", in, opts)
}

func (c *Client) SubmitAccessCode(ctx context.Context, in *SubmitAccessCodeRequest, opts ...grpc.CallOption) (*SubmitAccessCodeResponse, error) {
	return invoke[SubmitAccessCodeResponse](ctx, c, "SubmitAccessCode", in, opts)
}

func (c *Client) CancelAccess(ctx context.Context, in *CancelAccessRequest, opts ...grpc.CallOption) (*CancelAccessResponse, error) {
	return invoke[CancelAccessResponse](ctx, c, "CancelAccess", in, opts)
}

func (c *Client) ListAccessRequests(ctx context.Context, in *ListAccessRequestsRequest, opts ...grpc.CallOption) (*ListAccessRequestsResponse, error) {
	return invoke[ListAccessRequestsResponse](ctx, c, "ListAccessRequests", in, opts)
}

func (c *Client) RegisterPhysician(ctx context.Context, in *RegisterPhysicianRequest, opts ...grpc.CallOption) (*RegisterPhysicianResponse, error) {
	return invoke[RegisterPhysicianResponse](ctx, c, "RegisterPhysician", in, opts)
}
