package sqlinline

const QUpsertDraft = `--sql fa7d9a71-0dfb-4b31-9fcc-e10d28919346
insert into lesson_drafts (user_id, step, payload, updated_at)
values ($1::uuid, $2::int, coalesce($3::jsonb, '{}'::jsonb), now())
on conflict (user_id) do update set
    step = excluded.step,
    payload = excluded.payload,
    updated_at = now()
returning updated_at;
`

const QSelectDraft = `--sql b7f72c17-1b42-4780-9da0-d0e9c8c31bf4
select user_id, step, payload, updated_at
from lesson_drafts
where user_id = $1::uuid
limit 1;
`

const QDeleteDraft = `--sql 0b4f621d-6555-4115-add7-e2f1e595aae9
delete from lesson_drafts
where user_id = $1::uuid;
`
