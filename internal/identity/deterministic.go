package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-onboarding:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
// Keys must be prefixed by entity type to avoid collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// ResourceUUID identifies an imported record by kind, parent and handle, the
// record's natural key among its siblings (usually its slug). Top level
// records pass uuid.Nil as parent.
func ResourceUUID(kind string, parent uuid.UUID, handle string) uuid.UUID {
	return UUID(namespace + "resource:" + strings.ToLower(strings.TrimSpace(kind)) + ":" + parent.String() + ":" + strings.TrimSpace(handle))
}

// ColleagueUUID identifies a colleague by email address.
func ColleagueUUID(email string) uuid.UUID {
	return UUID(namespace + "colleague:" + strings.ToLower(strings.TrimSpace(email)))
}

// BlockUUID identifies the content block stored at position under owner.
func BlockUUID(owner uuid.UUID, position int) uuid.UUID {
	return UUID(namespace + "content_block:" + owner.String() + ":" + strconv.Itoa(position))
}
