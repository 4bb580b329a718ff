package sqlinline

const QUpsertGoogleUser = `--sql 1668547c-280e-478d-9e0c-fe3a27bf0c53
insert into users (id, google_sub, email, name, picture, tier, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, 'free', now(), now())
on conflict (email) do update set
    name = excluded.name,
    picture = excluded.picture,
    google_sub = excluded.google_sub,
    updated_at = now()
returning id, google_sub, email, name, picture, tier, created_at, updated_at;
`

const QSelectUserByID = `--sql 3e7d6aeb-aa4a-4cc5-9054-0db000a60419
select id, google_sub, email, name, picture, tier, created_at, updated_at
from users
where id = $1::uuid
limit 1;
`

const QSelectUserByEmail = `--sql b19b6ed1-1afc-4665-ae0e-329ee4fe8861
select id, google_sub, email, name, picture, tier, created_at, updated_at
from users
where email = $1::text
limit 1;
`

const QUpdateUserTier = `--sql ef9dff92-6016-4ef4-ae4e-fb5dc9361002
update users
set tier = $2::text, updated_at = now()
where id = $1::uuid;
`
