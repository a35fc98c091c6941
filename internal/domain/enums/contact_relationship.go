package enums

type ContactRelationship string

const (
	ContactRelationshipFriend  ContactRelationship = "friend"
	ContactRelationshipFamily  ContactRelationship = "family"
	ContactRelationshipPartner ContactRelationship = "partner"
	ContactRelationshipOther   ContactRelationship = "other"
)
