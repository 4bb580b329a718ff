package sqlinline

const QInsertTemplate = `--sql c3ab58a7-b194-428d-9b11-969b578cf029
insert into templates (id, user_id, name, industry, fields, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, coalesce($4::jsonb, '[]'::jsonb), now(), now())
returning id, user_id, name, industry, fields, created_at, updated_at;
`

const QListTemplates = `--sql 80899a21-eaeb-4baf-aee1-15ae1c3739fc
select id, user_id, name, industry, fields, created_at, updated_at
from templates
where user_id = $1::uuid
order by created_at desc;
`

const QDeleteTemplate = `--sql b3413a2a-d79c-4f97-9e9c-351d492c4bd5
delete from templates
where user_id = $1::uuid and id = $2::uuid;
`

const QInsertCustomField = `--sql b34b80d8-ae14-4f8c-bed6-02d76f486227
insert into custom_field_defs (id, user_id, name, kind, options, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, coalesce($4::jsonb, '[]'::jsonb), now())
returning id, user_id, name, kind, options, created_at;
`

const QListCustomFields = `--sql 7dc0697f-5c31-438e-9c3c-5b30e62e6f62
select id, user_id, name, kind, options, created_at
from custom_field_defs
where user_id = $1::uuid
order by created_at asc;
`

const QDeleteCustomField = `--sql 847f2faf-28ed-4858-af46-caa4492418ff
delete from custom_field_defs
where user_id = $1::uuid and id = $2::uuid;
`
