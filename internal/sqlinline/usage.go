package sqlinline

const QInsertUsageEvent = `--sql 4f5e1f34-f200-4b1b-9c27-ad2a73096544
insert into usage_events (id, user_id, event_type, created_at, properties)
values (gen_random_uuid(), $1::uuid, $2::text, now(), coalesce($3::jsonb, '{}'::jsonb));
`

// Period counters cover the current calendar month; catalog counters count
// live rows. The reset cadence therefore lives in the database, not in code.
const QSelectUsageCounters = `--sql 75307964-472a-4745-8562-e354c043e487
select
    (select count(*) from usage_events
       where user_id = $1::uuid
         and event_type = 'LESSON_CREATED'
         and created_at >= date_trunc('month', now())) as lessons_this_period,
    (select count(*) from usage_events
       where user_id = $1::uuid
         and event_type = 'EXPORT_RUN'
         and created_at >= date_trunc('month', now())) as exports_this_period,
    (select count(*) from custom_field_defs where user_id = $1::uuid) as custom_fields,
    (select count(*) from templates where user_id = $1::uuid) as templates;
`
