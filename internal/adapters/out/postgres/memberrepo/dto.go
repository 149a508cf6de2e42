package memberrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/member"

	"github.com/google/uuid"
)

type MemberDTO struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name    string     `gorm:"type:varchar(255);not null;index"`
	Address AddressDTO `gorm:"embedded"`
}

func (MemberDTO) TableName() string {
	return "members"
}

// AddressDTO is embedded without prefix by members and deliveries.
type AddressDTO struct {
	City    string `gorm:"type:varchar(255);not null"`
	Street  string `gorm:"type:varchar(255);not null"`
	Zipcode string `gorm:"type:varchar(32);not null;default:''"`
}

// AddressFromDomain maps an address value to its embedded columns.
func AddressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		City:    a.City(),
		Street:  a.Street(),
		Zipcode: a.Zipcode(),
	}
}

// ToDomain validates the columns back into an address.
func (a AddressDTO) ToDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.City, a.Street, a.Zipcode)
}

// FromDomain maps a member to its row.
func FromDomain(m *member.Member) MemberDTO {
	return MemberDTO{
		ID:      m.ID().Bytes(),
		Name:    m.Name(),
		Address: AddressFromDomain(m.Address()),
	}
}

// ToDomain rebuilds a member from its row.
func ToDomain(dto MemberDTO) (*member.Member, error) {
	address, err := dto.Address.ToDomain()
	if err != nil {
		return nil, err
	}
	return member.RestoreMember(kernel.UUIDFromGoogle(dto.ID), dto.Name, address)
}
