package ops

import (
	"strings"

	"github.com/jacksmith/campus/internal/collection"
	"github.com/jacksmith/campus/internal/model"
)

// AddContact records a contact. New contacts go first in the list.
func (s *Services) AddContact(in ContactInput) (*model.Contact, error) {
	in.Address = strings.TrimSpace(in.Address)
	in.Balance = strings.TrimSpace(in.Balance)
	if err := s.checkForm("contact", in); err != nil {
		return nil, err
	}

	c := model.Contact{Address: in.Address, Balance: in.Balance}
	if err := s.Contacts.Prepend(c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ContactChanges represents fields that can be updated on a contact.
// Nil fields are left unchanged.
type ContactChanges struct {
	Address *string
	Balance *string
}

// UpdateContact edits the contact at address. The address itself may change
// to one no other contact uses. Other stored fields are kept.
func (s *Services) UpdateContact(address string, changes ContactChanges) (*model.Contact, error) {
	c, ok := s.Contacts.Find(address)
	if !ok {
		return nil, &collection.NotFoundError{Kind: "contact", ID: address}
	}
	if changes.Address != nil {
		c.Address = strings.TrimSpace(*changes.Address)
	}
	if changes.Balance != nil {
		c.Balance = strings.TrimSpace(*changes.Balance)
	}
	if err := s.checkForm("contact", ContactInput{Address: c.Address, Balance: c.Balance}); err != nil {
		return nil, err
	}

	if err := s.Contacts.Replace(address, c); err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteContact removes the contact at address.
func (s *Services) DeleteContact(address string) (*model.Contact, error) {
	c, err := s.Contacts.Remove(address)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ContactQuery matches contacts whose address contains search.
func ContactQuery(search string) collection.Query[model.Contact] {
	return collection.Query[model.Contact]{}.
		Where(collection.Search(search, func(c *model.Contact) string { return c.Address }))
}

// ListContacts returns the contacts whose address contains search.
func (s *Services) ListContacts(search string) []model.Contact {
	return ContactQuery(search).Apply(s.Contacts.Items())
}
