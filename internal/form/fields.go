package form

import "rentadmin/internal/models"

// Recognized field sets per entity. Schema construction checks against
// these, keeping the string-named mapping honest.
var (
	UserFieldNames = []string{
		"id", "name", "email", "phone", "role",
		"profile_image", "intro_video", "created_at", "updated_at",
	}

	PropertyFieldNames = []string{
		"id", "user_id", "name", "description", "price",
		"location", "images", "video",
	}

	BookingFieldNames = []string{
		"id", "name", "email", "phone", "role", "user_id",
		"property_id", "property_name", "start_date", "end_date", "status",
	}
)

// AddUser creates a platform account. Upload slots are explicit per
// field; the picker never has to guess a target from the file's type.
var AddUser = MustSchema("add_user", UserFieldNames,
	Field{Label: "Profile Image", Name: "profile_image", Type: FieldFile},
	Field{Label: "Intro Video", Name: "intro_video", Type: FieldFile},
	Field{Label: "Name", Name: "name", Type: FieldText, Required: true},
	Field{Label: "Email", Name: "email", Type: FieldEmail, Required: true},
	Field{Label: "Phone", Name: "phone", Type: FieldTel},
	Field{
		Label: "Role", Name: "role", Type: FieldSelect, Required: true,
		Options:      selectOptions(models.RoleOwner, models.RoleClient, models.RoleAdmin),
		DefaultValue: models.RoleClient,
	},
)

// EditUser patches an existing account.
var EditUser = MustSchema("edit_user", UserFieldNames,
	Field{Label: "Profile Image", Name: "profile_image", Type: FieldFile},
	Field{Label: "Name", Name: "name", Type: FieldText, Required: true},
	Field{Label: "Email", Name: "email", Type: FieldEmail, Required: true},
	Field{Label: "Phone", Name: "phone", Type: FieldTel},
	Field{
		Label: "Role", Name: "role", Type: FieldSelect, Required: true,
		Options: selectOptions(models.RoleAdmin, models.RoleClient, models.RoleOwner),
	},
)

// AddBooking records a booking on behalf of a client.
var AddBooking = MustSchema("add_booking", BookingFieldNames,
	Field{Label: "Name", Name: "name", Type: FieldText, Required: true},
	Field{Label: "Email", Name: "email", Type: FieldEmail, Required: true},
	Field{Label: "Phone", Name: "phone", Type: FieldTel},
	Field{Label: "Property Name", Name: "property_name", Type: FieldText, Required: true},
	Field{Label: "Start Date", Name: "start_date", Type: FieldDate, Required: true},
	Field{Label: "End Date", Name: "end_date", Type: FieldDate, Required: true},
	Field{
		Label: "Status", Name: "status", Type: FieldSelect, Required: true,
		Options:      selectOptions(models.StatusPending, models.StatusConfirmed, models.StatusCancelled),
		DefaultValue: models.StatusPending,
	},
)

// AddProperty lists a new property.
var AddProperty = MustSchema("add_property", PropertyFieldNames,
	Field{Label: "Property Name", Name: "name", Type: FieldText, Required: true},
	Field{Label: "Property Description", Name: "description", Type: FieldText, Required: true},
	Field{Label: "Location", Name: "location", Type: FieldText, Required: true},
	Field{Label: "Price", Name: "price", Type: FieldNumber, Required: true},
	Field{Label: "Images", Name: "images", Type: FieldFile},
)

// EditProperty patches an existing property.
var EditProperty = MustSchema("edit_property", PropertyFieldNames,
	Field{Label: "Property Name", Name: "name", Type: FieldText, Required: true},
	Field{Label: "Location", Name: "location", Type: FieldText, Required: true},
	Field{Label: "Price", Name: "price", Type: FieldNumber, Required: true},
	Field{Label: "Images", Name: "images", Type: FieldFile},
)
