package errors

// User-friendly error messages
const (
	MsgValidationFailed   = "Validation failed"
	MsgInvalidID          = "Invalid resource id"
	MsgInvalidBody        = "Request body is malformed"
	MsgInvalidCredentials = "Invalid credentials"
	MsgWrongPassword      = "Current password is incorrect"
	MsgNotAuthorized      = "Not authorized to access this route"
	MsgRoleNotAllowed     = "Your role is not allowed to access this route"
	MsgAccountDisabled    = "Your account has been deactivated"
	MsgEmailTaken         = "User already exists with this email"
	MsgPropertyNotFound   = "Property not found"
	MsgNotOwner           = "Not authorized to modify this property"
	MsgOwnPropertyInquiry = "You cannot inquire about your own property"
	MsgInquiryForbidden   = "Not authorized to access these inquiries"
	MsgAlreadyFavorite    = "Property already in favorites"
	MsgNotFavorite        = "Property not in favorites"
	MsgNotAnAgent         = "User is not an agent"
	MsgAgentsOnly         = "Only agents can update agent profile"
	MsgSelfDeactivate     = "You cannot deactivate your own account"
	MsgSelfDelete         = "You cannot delete your own account"
	MsgNoImage            = "Please upload an image"
	MsgNoImages           = "Please upload at least one image"
	MsgTooManyImages      = "Too many images in one upload"
	MsgInvalidImages      = "Some files cannot be uploaded"
	MsgMissingPublicID    = "Please provide image public ID"
	MsgUploadFailed       = "Image upload failed. Please try again."
	MsgServiceUnavailable = "Service is temporarily unavailable. Please try again in a few minutes."
	MsgRateLimited        = "Too many requests. Please wait a moment and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
