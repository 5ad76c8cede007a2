package avatar

import (
	"fmt"
	"regexp"
	"time"
)

const (
	keyPrefix = "avatar"
	keyExt    = ".png"
)

// Keys produced by this pipeline: avatar_<ownerID>_<unixMillis>.png.
// Anything else stored in the avatar column (default avatars, externally
// provisioned images) is foreign and never deleted here.
var generatedKeyPattern = regexp.MustCompile(`(?i)^avatar_\d+_\d+\.png$`)

func GenerateKey(ownerID int64, t time.Time) string {
	return fmt.Sprintf("%s_%d_%d%s", keyPrefix, ownerID, t.UnixMilli(), keyExt)
}

func IsGeneratedKey(key string) bool {
	return generatedKeyPattern.MatchString(key)
}
