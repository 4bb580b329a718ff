package sqlinline

const lessonColumns = `id, user_id, project_name, client_name, satisfaction, budget_status, timeline_status, scope_changed, notes, custom_fields, created_at, updated_at`

const QInsertLesson = `--sql 49c9a224-de93-43a8-b48e-59b6d9301319
insert into lessons (id, user_id, project_name, client_name, satisfaction, budget_status, timeline_status, scope_changed, notes, custom_fields, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::int, $5::text, $6::text, $7::boolean, $8::text, coalesce($9::jsonb, '{}'::jsonb), now(), now())
returning ` + lessonColumns + `;
`

const QSelectLessonByID = `--sql 90519670-af8a-47fc-8848-e491c7c3fb3b
select ` + lessonColumns + `
from lessons
where user_id = $1::uuid and id = $2::uuid
limit 1;
`

// Filter arguments are nullable; a null disables the corresponding predicate.
const QListLessons = `--sql 5b0b53cb-c641-4095-9c8b-272718ba250d
select ` + lessonColumns + `
from lessons
where user_id = $1::uuid
  and ($2::text is null or client_name ilike $2)
  and ($3::int is null or satisfaction >= $3)
  and ($4::int is null or satisfaction <= $4)
  and ($5::text is null or budget_status = $5)
  and ($6::text is null or timeline_status = $6)
  and ($7::boolean is null or scope_changed = $7)
  and ($8::timestamptz is null or created_at >= $8)
  and ($9::timestamptz is null or created_at < $9)
  and ($10::text is null or project_name ilike $10 or client_name ilike $10 or notes ilike $10)
order by created_at desc
limit $11 offset $12;
`

const QUpdateLesson = `--sql b0930939-52ef-43d2-b783-335f88b92dc2
update lessons
set project_name = $3::text,
    client_name = $4::text,
    satisfaction = $5::int,
    budget_status = $6::text,
    timeline_status = $7::text,
    scope_changed = $8::boolean,
    notes = $9::text,
    custom_fields = coalesce($10::jsonb, '{}'::jsonb),
    updated_at = now()
where user_id = $1::uuid and id = $2::uuid
returning ` + lessonColumns + `;
`

const QDeleteLesson = `--sql 2886b4b7-26ff-4714-a01a-516e695d153a
delete from lessons
where user_id = $1::uuid and id = $2::uuid;
`
