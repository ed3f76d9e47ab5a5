package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData["contact_created"]["ContactName"] == "John Doe"
var PreviewData = map[Template]map[string]string{
	TemplateContactCreated: {
		"ContactID":    "1",
		"ContactName":  "John Doe",
		"ContactKind":  "Work",
		"ContactEmail": "john@example.com",
	},
}
