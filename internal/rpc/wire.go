package rpc

import "google.golang.org/protobuf/encoding/protowire"

// Hand-written protobuf encoding for every ClinicService message. Keep the
// field numbers in step with api/clinic/v1/clinic.proto.

func (m *RegisterRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	b = appendString(b, 2, m.Password)
	b = appendString(b, 3, m.FirstName)
	b = appendString(b, 4, m.LastName)
	b = appendString(b, 5, m.SecondContactNo)
	return appendString(b, 6, m.SecondContactName)
}

func (m *RegisterRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Login)
	case 2:
		return consumeString(num, typ, b, &m.Password)
	case 3:
		return consumeString(num, typ, b, &m.FirstName)
	case 4:
		return consumeString(num, typ, b, &m.LastName)
	case 5:
		return consumeString(num, typ, b, &m.SecondContactNo)
	case 6:
		return consumeString(num, typ, b, &m.SecondContactName)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *RegisterResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserID)
	return appendString(b, 2, m.Token)
}

func (m *RegisterResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.UserID)
	case 2:
		return consumeString(num, typ, b, &m.Token)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *LoginRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	return appendString(b, 2, m.Password)
}

func (m *LoginRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Login)
	case 2:
		return consumeString(num, typ, b, &m.Password)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *LoginResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Token)
	b = appendString(b, 2, m.UserID)
	b = appendString(b, 3, m.Role)
	return appendString(b, 4, m.Name)
}

func (m *LoginResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Token)
	case 2:
		return consumeString(num, typ, b, &m.UserID)
	case 3:
		return consumeString(num, typ, b, &m.Role)
	case 4:
		return consumeString(num, typ, b, &m.Name)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

// empty messages

func (*LogoutRequest) appendWire(b []byte) []byte { return b }
func (*LogoutRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*LogoutResponse) appendWire(b []byte) []byte { return b }
func (*LogoutResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*GetMyDetailsRequest) appendWire(b []byte) []byte { return b }
func (*GetMyDetailsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListSpecializationsRequest) appendWire(b []byte) []byte { return b }
func (*ListSpecializationsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListBookableDatesRequest) appendWire(b []byte) []byte { return b }
func (*ListBookableDatesRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListMyAppointmentsRequest) appendWire(b []byte) []byte { return b }
func (*ListMyAppointmentsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*CancelAppointmentResponse) appendWire(b []byte) []byte { return b }
func (*CancelAppointmentResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListConsultedAppointmentsRequest) appendWire(b []byte) []byte { return b }
func (*ListConsultedAppointmentsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListMyConsultationsRequest) appendWire(b []byte) []byte { return b }
func (*ListMyConsultationsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (*ListAccessRequestsRequest) appendWire(b []byte) []byte { return b }
func (*ListAccessRequestsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *AccountDetails) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.UserID)
	b = appendString(b, 2, m.Login)
	b = appendString(b, 3, m.Role)
	b = appendString(b, 4, m.FirstName)
	b = appendString(b, 5, m.LastName)
	b = appendInt(b, 6, m.PermLevel)
	b = appendString(b, 7, m.SecondContactNo)
	b = appendString(b, 8, m.SecondContactName)
	b = appendString(b, 9, m.PracticeNo)
	b = appendString(b, 10, m.Specialization)
	return appendString(b, 11, m.Display)
}

func (m *AccountDetails) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.UserID)
	case 2:
		return consumeString(num, typ, b, &m.Login)
	case 3:
		return consumeString(num, typ, b, &m.Role)
	case 4:
		return consumeString(num, typ, b, &m.FirstName)
	case 5:
		return consumeString(num, typ, b, &m.LastName)
	case 6:
		return consumeInt(num, typ, b, &m.PermLevel)
	case 7:
		return consumeString(num, typ, b, &m.SecondContactNo)
	case 8:
		return consumeString(num, typ, b, &m.SecondContactName)
	case 9:
		return consumeString(num, typ, b, &m.PracticeNo)
	case 10:
		return consumeString(num, typ, b, &m.Specialization)
	case 11:
		return consumeString(num, typ, b, &m.Display)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *UpdateMyDetailsRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.FirstName)
	b = appendString(b, 2, m.LastName)
	b = appendString(b, 3, m.Password)
	b = appendString(b, 4, m.SecondContactNo)
	b = appendString(b, 5, m.SecondContactName)
	b = appendString(b, 6, m.PracticeNo)
	return appendString(b, 7, m.Specialization)
}

func (m *UpdateMyDetailsRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.FirstName)
	case 2:
		return consumeString(num, typ, b, &m.LastName)
	case 3:
		return consumeString(num, typ, b, &m.Password)
	case 4:
		return consumeString(num, typ, b, &m.SecondContactNo)
	case 5:
		return consumeString(num, typ, b, &m.SecondContactName)
	case 6:
		return consumeString(num, typ, b, &m.PracticeNo)
	case 7:
		return consumeString(num, typ, b, &m.Specialization)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListSpecializationsResponse) appendWire(b []byte) []byte {
	return appendStrings(b, 1, m.Specializations)
}

func (m *ListSpecializationsResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeStrings(num, typ, b, &m.Specializations)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListBookableDatesResponse) appendWire(b []byte) []byte {
	return appendStrings(b, 1, m.Dates)
}

func (m *ListBookableDatesResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeStrings(num, typ, b, &m.Dates)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *Appointment) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Date)
	b = appendString(b, 3, m.PhysicianID)
	b = appendString(b, 4, m.PatientID)
	b = appendString(b, 5, m.CounterpartName)
	b = appendBool(b, 6, m.Handled)
	return appendTime(b, 7, m.CreatedAt)
}

func (m *Appointment) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.ID)
	case 2:
		return consumeString(num, typ, b, &m.Date)
	case 3:
		return consumeString(num, typ, b, &m.PhysicianID)
	case 4:
		return consumeString(num, typ, b, &m.PatientID)
	case 5:
		return consumeString(num, typ, b, &m.CounterpartName)
	case 6:
		return consumeBool(num, typ, b, &m.Handled)
	case 7:
		return consumeTime(num, typ, b, &m.CreatedAt)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *BookAppointmentRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Specialization)
	return appendString(b, 2, m.Date)
}

func (m *BookAppointmentRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Specialization)
	case 2:
		return consumeString(num, typ, b, &m.Date)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *BookAppointmentResponse) appendWire(b []byte) []byte {
	if m.Appointment != nil {
		b = appendMessage(b, 1, m.Appointment)
	}
	return b
}

func (m *BookAppointmentResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeOne(num, typ, b, &m.Appointment)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListMyAppointmentsResponse) appendWire(b []byte) []byte {
	for _, a := range m.Appointments {
		b = appendMessage(b, 1, a)
	}
	return b
}

func (m *ListMyAppointmentsResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeMany(num, typ, b, &m.Appointments)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *CancelAppointmentRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.AppointmentID)
}

func (m *CancelAppointmentRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeString(num, typ, b, &m.AppointmentID)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *Consultation) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.AppointmentID)
	b = appendString(b, 3, m.PatientID)
	b = appendString(b, 4, m.PhysicianID)
	b = appendString(b, 5, m.Notes)
	b = appendString(b, 6, m.Prescription)
	return appendTime(b, 7, m.CreatedAt)
}

func (m *Consultation) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.ID)
	case 2:
		return consumeString(num, typ, b, &m.AppointmentID)
	case 3:
		return consumeString(num, typ, b, &m.PatientID)
	case 4:
		return consumeString(num, typ, b, &m.PhysicianID)
	case 5:
		return consumeString(num, typ, b, &m.Notes)
	case 6:
		return consumeString(num, typ, b, &m.Prescription)
	case 7:
		return consumeTime(num, typ, b, &m.CreatedAt)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *AddConsultationRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.AppointmentID)
	b = appendString(b, 2, m.Notes)
	return appendString(b, 3, m.Prescription)
}

func (m *AddConsultationRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.AppointmentID)
	case 2:
		return consumeString(num, typ, b, &m.Notes)
	case 3:
		return consumeString(num, typ, b, &m.Prescription)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *AddConsultationResponse) appendWire(b []byte) []byte {
	if m.Consultation != nil {
		b = appendMessage(b, 1, m.Consultation)
	}
	return b
}

func (m *AddConsultationResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeOne(num, typ, b, &m.Consultation)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListConsultedAppointmentsResponse) appendWire(b []byte) []byte {
	for _, a := range m.Appointments {
		b = appendMessage(b, 1, a)
	}
	return b
}

func (m *ListConsultedAppointmentsResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeMany(num, typ, b, &m.Appointments)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListMyConsultationsResponse) appendWire(b []byte) []byte {
	for _, c := range m.Consultations {
		b = appendMessage(b, 1, c)
	}
	return b
}

func (m *ListMyConsultationsResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeMany(num, typ, b, &m.Consultations)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *PatientEdit) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.FirstName)
	b = appendString(b, 2, m.LastName)
	b = appendString(b, 3, m.SecondContactNo)
	return appendString(b, 4, m.SecondContactName)
}

func (m *PatientEdit) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.FirstName)
	case 2:
		return consumeString(num, typ, b, &m.LastName)
	case 3:
		return consumeString(num, typ, b, &m.SecondContactNo)
	case 4:
		return consumeString(num, typ, b, &m.SecondContactName)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *PhysicianRegistration) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Login)
	b = appendString(b, 2, m.Password)
	b = appendString(b, 3, m.FirstName)
	b = appendString(b, 4, m.LastName)
	b = appendString(b, 5, m.PracticeNo)
	return appendString(b, 6, m.Specialization)
}

func (m *PhysicianRegistration) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Login)
	case 2:
		return consumeString(num, typ, b, &m.Password)
	case 3:
		return consumeString(num, typ, b, &m.FirstName)
	case 4:
		return consumeString(num, typ, b, &m.LastName)
	case 5:
		return consumeString(num, typ, b, &m.PracticeNo)
	case 6:
		return consumeString(num, typ, b, &m.Specialization)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *RequestAccessRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Action)
	b = appendString(b, 2, m.TargetLogin)
	b = appendString(b, 3, m.AppointmentID)
	if m.PatientEdit != nil {
		b = appendMessage(b, 4, m.PatientEdit)
	}
	if m.Physician != nil {
		b = appendMessage(b, 5, m.Physician)
	}
	return b
}

func (m *RequestAccessRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Action)
	case 2:
		return consumeString(num, typ, b, &m.TargetLogin)
	case 3:
		return consumeString(num, typ, b, &m.AppointmentID)
	case 4:
		return consumeOne(num, typ, b, &m.PatientEdit)
	case 5:
		return consumeOne(num, typ, b, &m.Physician)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *RequestAccessResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.RequestID)
	b = appendString(b, 2, m.TargetID)
	return appendTime(b, 3, m.ExpiresAt)
}

func (m *RequestAccessResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.RequestID)
	case 2:
		return consumeString(num, typ, b, &m.TargetID)
	case 3:
		return consumeTime(num, typ, b, &m.ExpiresAt)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *SubmitAccessCodeRequest) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.RequestID)
	return appendString(b, 2, m.Code)
}

func (m *SubmitAccessCodeRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.RequestID)
	case 2:
		return consumeString(num, typ, b, &m.Code)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *SubmitAccessCodeResponse) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.Outcome)
	if m.Patient != nil {
		b = appendMessage(b, 2, m.Patient)
	}
	for _, c := range m.Consultations {
		b = appendMessage(b, 3, c)
	}
	b = appendString(b, 4, m.PhysicianID)
	return appendString(b, 5, m.AppointmentID)
}

func (m *SubmitAccessCodeResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.Outcome)
	case 2:
		return consumeOne(num, typ, b, &m.Patient)
	case 3:
		return consumeMany(num, typ, b, &m.Consultations)
	case 4:
		return consumeString(num, typ, b, &m.PhysicianID)
	case 5:
		return consumeString(num, typ, b, &m.AppointmentID)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *CancelAccessRequest) appendWire(b []byte) []byte {
	return appendString(b, 1, m.RequestID)
}

func (m *CancelAccessRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeString(num, typ, b, &m.RequestID)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *CancelAccessResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.Outcome)
}

func (m *CancelAccessResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeString(num, typ, b, &m.Outcome)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *PendingAccess) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.RequestID)
	b = appendString(b, 2, m.Code)
	b = appendString(b, 3, m.RequesterID)
	b = appendString(b, 4, m.RequesterName)
	b = appendString(b, 5, m.RequesterRole)
	return appendTime(b, 6, m.IssuedAt)
}

func (m *PendingAccess) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	switch num {
	case 1:
		return consumeString(num, typ, b, &m.RequestID)
	case 2:
		return consumeString(num, typ, b, &m.Code)
	case 3:
		return consumeString(num, typ, b, &m.RequesterID)
	case 4:
		return consumeString(num, typ, b, &m.RequesterName)
	case 5:
		return consumeString(num, typ, b, &m.RequesterRole)
	case 6:
		return consumeTime(num, typ, b, &m.IssuedAt)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *ListAccessRequestsResponse) appendWire(b []byte) []byte {
	for _, r := range m.Requests {
		b = appendMessage(b, 1, r)
	}
	return b
}

func (m *ListAccessRequestsResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeMany(num, typ, b, &m.Requests)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *RegisterPhysicianRequest) appendWire(b []byte) []byte {
	if m.Physician != nil {
		b = appendMessage(b, 1, m.Physician)
	}
	return b
}

func (m *RegisterPhysicianRequest) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeOne(num, typ, b, &m.Physician)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}

func (m *RegisterPhysicianResponse) appendWire(b []byte) []byte {
	return appendString(b, 1, m.UserID)
}

func (m *RegisterPhysicianResponse) consumeField(num protowire.Number, typ protowire.Type, b []byte) int {
	if num == 1 {
		return consumeString(num, typ, b, &m.UserID)
	}
	return protowire.ConsumeFieldValue(num, typ, b)
}
