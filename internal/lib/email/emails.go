package email

import "strconv"

// ContactCreated is the data shown in a "contact created" notification.
type ContactCreated struct {
	ID    int
	Name  string
	Kind  string
	Email string
}

// SendContactCreatedEmail tells the operator at `to` about a newly added contact.
func (c *Client) SendContactCreatedEmail(to string, contact ContactCreated) error {
	data := map[string]string{
		"ContactID":    strconv.Itoa(contact.ID),
		"ContactName":  contact.Name,
		"ContactKind":  contact.Kind,
		"ContactEmail": contact.Email,
	}

	return c.SendEmail(
		to,
		"New contact: "+contact.Name,
		TemplateContactCreated,
		data,
	)
}
