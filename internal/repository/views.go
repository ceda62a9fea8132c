package repository

import "context"

// IncrementArticleViews and IncrementAnnouncementViews let the background
// job workers record views through the repositories.

func (r *Repositories) IncrementArticleViews(ctx context.Context, id int64) error {
	return r.Articles.IncrementViews(ctx, id)
}

func (r *Repositories) IncrementAnnouncementViews(ctx context.Context, id int64) error {
	return r.Announcements.IncrementViews(ctx, id)
}
