package model

import "fmt"

type Role string

const (
	RoleAdmin     Role = "admin"
	RolePatient   Role = "patient"
	RolePhysician Role = "physician"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePatient, RolePhysician:
		return true
	}
	return false
}

// SuperAdminLevel is the admin permission level that can register physicians
// and cancel appointments without another admin's consent.
const SuperAdminLevel = 2

type User struct {
	ID           string
	Login        string
	PasswordHash string
	FirstName    string
	LastName     string
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Account is one of *Admin, *Patient or *Physician. The set is closed.
type Account interface {
	Identity() *User
	Role() Role
	DisplayDetails() string
	sealed()
}

type Admin struct {
	User
	PermLevel int
}

type Patient struct {
	User
	SecondContactNo   string
	SecondContactName string
}

type Physician struct {
	User
	PracticeNo     string
	Specialization string
}

func (a *Admin) Identity() *User     { return &a.User }
func (p *Patient) Identity() *User   { return &p.User }
func (p *Physician) Identity() *User { return &p.User }

func (*Admin) Role() Role     { return RoleAdmin }
func (*Patient) Role() Role   { return RolePatient }
func (*Physician) Role() Role { return RolePhysician }

func (*Admin) sealed()     {}
func (*Patient) sealed()   {}
func (*Physician) sealed() {}

func (a *Admin) IsSuper() bool { return a.PermLevel >= SuperAdminLevel }

func (a *Admin) DisplayDetails() string {
	return fmt.Sprintf("Login: %s\nName: %s\nPermission level: %d", a.Login, a.FullName(), a.PermLevel)
}

func (p *Patient) DisplayDetails() string {
	return fmt.Sprintf("Login: %s\nName: %s\nSecond contact: %s (%s)",
		p.Login, p.FullName(), p.SecondContactName, p.SecondContactNo)
}

func (p *Physician) DisplayDetails() string {
	return fmt.Sprintf("Login: %s\nName: %s\nPractice no: %s\nSpecialization: %s",
		p.Login, p.FullName(), p.PracticeNo, p.Specialization)
}

// Label is how audit entries name an account, e.g. "Physician 3f2a...".
func Label(a Account) string {
	var kind string
	switch a.(type) {
	case *Admin:
		kind = "Admin"
	case *Patient:
		kind = "Patient"
	case *Physician:
		kind = "Physician"
	}
	return kind + " " + a.Identity().ID
}
