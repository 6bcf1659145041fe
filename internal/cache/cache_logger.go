package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// BatchInvalidate invalidates multiple patterns in batch
func BatchInvalidate(ctx context.Context, helper *CacheHelper, patterns []string) error {
	var lastErr error
	for _, pattern := range patterns {
		if err := helper.InvalidatePattern(ctx, pattern); err != nil {
			lastErr = err
			slog.ErrorContext(ctx, "Failed to invalidate pattern in batch",
				"error", err,
				"pattern", pattern)
		}
	}
	return lastErr
}

// InvalidateStudentCache invalidates all cached entries for a student,
// including roster listings that may embed the record
func InvalidateStudentCache(ctx context.Context, cm *CacheManager, studentID string) {
	SafeDelete(ctx, cm.Student, fmt.Sprintf("id:%s", studentID))
	SafeDelete(ctx, cm.Student, fmt.Sprintf("results:%s", studentID))
	SafeDelete(ctx, cm.Student, fmt.Sprintf("fees:%s", studentID))
	SafeInvalidatePattern(ctx, cm.Student, "list:*")
	SafeInvalidatePattern(ctx, cm.Exists, fmt.Sprintf("student:%s*", studentID))
}

// InvalidateNewsCache invalidates the public news feed listings
func InvalidateNewsCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.News, "list:*")
}

// InvalidateAdmissionCache invalidates admission listings after a
// submission or status change
func InvalidateAdmissionCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Admission, "list:*")
}
