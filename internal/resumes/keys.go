package resumes

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artifact keys embed the owner, a timestamp, and a random suffix so that
// concurrent runs for the same user never collide.

func optimizedResumeKey(userID string, now time.Time) string {
	return artifactKey(userID, "optimized_resumes", "optimized", now)
}

func createdResumeKey(userID string, now time.Time) string {
	return artifactKey(userID, "created_resumes", "created", now)
}

func artifactKey(userID, folder, prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("users/%s/%s/%s_%d_%s.pdf", userID, folder, prefix, now.Unix(), suffix)
}
