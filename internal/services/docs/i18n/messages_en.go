package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	KeyNameRequired         = "docs.error.name_required"
	KeyNameInvalid          = "docs.error.name_invalid"
	KeyExtensionUnsupported = "docs.error.extension_unsupported"
	KeyAlreadyExists        = "docs.error.already_exists"
	KeyNotFound             = "docs.error.not_found"
	KeySignInRequired       = "docs.error.sign_in_required"

	KeyCreated = "docs.notice.created"
	KeyUpdated = "docs.notice.updated"
	KeyDeleted = "docs.notice.deleted"

	KeyUsernameRequired   = "auth.error.username_required"
	KeyUsernameTaken      = "auth.error.username_taken"
	KeyPasswordInvalid    = "auth.error.password_invalid"
	KeyInvalidCredentials = "auth.error.invalid_credentials"

	KeyWelcome       = "auth.notice.welcome"
	KeySignedOut     = "auth.notice.signed_out"
	KeySignupSuccess = "auth.notice.signup_success"

	KeyTitleIndex  = "page.title.index"
	KeyTitleNew    = "page.title.new"
	KeyTitleEdit   = "page.title.edit"
	KeyTitleSignIn = "page.title.sign_in"
	KeyTitleSignUp = "page.title.sign_up"

	KeySignedInAs    = "page.signed_in_as"
	KeySignOut       = "page.sign_out"
	KeySignIn        = "page.sign_in"
	KeySignUp        = "page.sign_up"
	KeyNewDocument   = "page.new_document"
	KeyEdit          = "page.edit"
	KeyDelete        = "page.delete"
	KeyDuplicate     = "page.duplicate"
	KeySaveChanges   = "page.save_changes"
	KeyCreate        = "page.create"
	KeySortAscending = "page.sort_ascending"
	KeySortDesc      = "page.sort_descending"
	KeyNoDocuments   = "page.no_documents"

	KeyFieldFilename = "page.field.filename"
	KeyFieldContent  = "page.field.content"
	KeyFieldUsername = "page.field.username"
	KeyFieldPassword = "page.field.password"
	KeyEditing       = "page.editing"
	KeyPasswordHint  = "page.password_hint"
)

func init() {
	lang := language.English

	// Document errors
	message.SetString(lang, KeyNameRequired, "A name is required.")
	message.SetString(lang, KeyNameInvalid, "%s is not a valid name.")
	message.SetString(lang, KeyExtensionUnsupported, "Please use a valid file extension: %s.")
	message.SetString(lang, KeyAlreadyExists, "%s already exists.")
	message.SetString(lang, KeyNotFound, "%s does not exist.")
	message.SetString(lang, KeySignInRequired, "You must be signed in to do that.")

	// Document notices
	message.SetString(lang, KeyCreated, "%s has been created.")
	message.SetString(lang, KeyUpdated, "%s has been updated.")
	message.SetString(lang, KeyDeleted, "%s has been deleted.")

	// Credential errors
	message.SetString(lang, KeyUsernameRequired, "A username is required.")
	message.SetString(lang, KeyUsernameTaken, "Username already exists.")
	message.SetString(lang, KeyPasswordInvalid, "Password is invalid.")
	message.SetString(lang, KeyInvalidCredentials, "Invalid credentials")

	// Session notices
	message.SetString(lang, KeyWelcome, "Welcome %s!")
	message.SetString(lang, KeySignedOut, "You have been signed out.")
	message.SetString(lang, KeySignupSuccess, "Signup success!")

	// Pages
	message.SetString(lang, KeyTitleIndex, "Documents")
	message.SetString(lang, KeyTitleNew, "New Document")
	message.SetString(lang, KeyTitleEdit, "Edit %s")
	message.SetString(lang, KeyTitleSignIn, "Sign In")
	message.SetString(lang, KeyTitleSignUp, "Sign Up")
	message.SetString(lang, KeySignedInAs, "Signed in as %s")
	message.SetString(lang, KeySignOut, "Sign Out")
	message.SetString(lang, KeySignIn, "Sign In")
	message.SetString(lang, KeySignUp, "Sign Up")
	message.SetString(lang, KeyNewDocument, "New Document")
	message.SetString(lang, KeyEdit, "Edit")
	message.SetString(lang, KeyDelete, "Delete")
	message.SetString(lang, KeyDuplicate, "Duplicate")
	message.SetString(lang, KeySaveChanges, "Save Changes")
	message.SetString(lang, KeyCreate, "Create")
	message.SetString(lang, KeySortAscending, "A-Z")
	message.SetString(lang, KeySortDesc, "Z-A")
	message.SetString(lang, KeyNoDocuments, "No documents yet.")
	message.SetString(lang, KeyFieldFilename, "Add a new document:")
	message.SetString(lang, KeyFieldContent, "Content")
	message.SetString(lang, KeyFieldUsername, "Username")
	message.SetString(lang, KeyFieldPassword, "Password")
	message.SetString(lang, KeyEditing, "Edit content of %s:")
	message.SetString(lang, KeyPasswordHint, "Passwords need at least 5 letters, digits or underscores.")
}
