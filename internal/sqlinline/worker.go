package sqlinline

// Retention pruning deletes lessons older than the owner tier's retention
// window. Tiers with unlimited retention are excluded by the caller.
const QDeleteExpiredLessons = `--sql 397101f4-5fc9-4045-a1b5-cd9ed1479346
delete from lessons
using users
where lessons.user_id = users.id
  and users.tier = $1::text
  and lessons.created_at < now() - ($2::int * interval '1 day');
`

const QDeleteStaleDrafts = `--sql ceb006ee-dcbb-4d88-a478-c14b50215abc
delete from lesson_drafts
where updated_at < now() - interval '30 days';
`
