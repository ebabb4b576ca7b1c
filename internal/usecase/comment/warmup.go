package comment

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

const bloomWarmupBatch = 500

// InitBloomFilter loads every known post slug into the bloom filter. Slugs
// added later reach the filter on their first comment.
func (s *Service) InitBloomFilter(ctx context.Context) error {
	var cursor, total int64
	for {
		slugs, next, err := s.postRepo.FetchSlugs(ctx, cursor, bloomWarmupBatch)
		if err != nil {
			return fmt.Errorf("fetch post slugs after %d: %w", cursor, err)
		}
		if len(slugs) == 0 {
			break
		}
		if err := s.bloomRepo.BulkAdd(ctx, slugs); err != nil {
			return fmt.Errorf("add post slugs to bloom filter: %w", err)
		}
		total += int64(len(slugs))
		cursor = next
		if len(slugs) < bloomWarmupBatch {
			break
		}
	}
	logrus.Infof("bloom filter loaded with %d post slugs", total)
	return nil
}
